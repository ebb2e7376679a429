package office

import (
	"github.com/GriffinCanCode/office-mcp/internal/shared/types"
)

func tools() []types.Tool {
	return []types.Tool{
		{
			ID:          "office.list_active_presentations",
			Name:        "list_active_presentations",
			Description: "List all open presentations",
			Returns:     "object",
		},
		{
			ID:          "office.list_active_documents",
			Name:        "list_active_documents",
			Description: "List all open documents",
			Returns:     "object",
		},
		{
			ID:          "office.list_active_workbooks",
			Name:        "list_active_workbooks",
			Description: "List all open workbooks",
			Returns:     "object",
		},
		{
			ID:          "office.check_office_status",
			Name:        "check_office_status",
			Description: "Check which Office applications are running",
			Returns:     "object",
		},
		{
			ID:          "office.get_office_version",
			Name:        "get_office_version",
			Description: "Get the installed Office application versions",
			Returns:     "object",
		},
	}
}
