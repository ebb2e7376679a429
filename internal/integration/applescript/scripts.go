package applescript

import (
	"fmt"
	"strings"
)

// Application names as seen by System Events
const (
	AppPowerPoint = "Microsoft PowerPoint"
	AppWord       = "Microsoft Word"
	AppExcel      = "Microsoft Excel"
)

// saveFormats maps an output extension to the app's "save as" clause
var saveFormats = map[string]map[string]string{
	AppPowerPoint: {
		"pptx": "save as PowerPoint presentation",
		"pdf":  "save as PDF",
		"ppt":  "save as PowerPoint 97-2004 presentation",
	},
	AppWord: {
		"docx": "save as Word document",
		"pdf":  "save as PDF",
		"doc":  "save as Word 97-2004 document",
		"rtf":  "save as rich text format",
		"txt":  "save as plain text",
	},
	AppExcel: {
		"xlsx": "save as Excel workbook",
		"pdf":  "save as PDF",
		"csv":  "save as CSV",
	},
}

// activeObject is the frontmost document noun per app
var activeObject = map[string]string{
	AppPowerPoint: "active presentation",
	AppWord:       "active document",
	AppExcel:      "active workbook",
}

// SupportsFormat reports whether app can export to format
func SupportsFormat(app, format string) bool {
	_, ok := saveFormats[app][strings.ToLower(format)]
	return ok
}

// quote escapes s for use inside an AppleScript string literal
func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

func isRunningScript(app string) string {
	return fmt.Sprintf(`tell application "System Events"
	return (name of processes) contains %s
end tell`, quote(app))
}

func activateScript(app string) string {
	return fmt.Sprintf(`tell application %s
	activate
end tell`, quote(app))
}

func openFileScript(app, path string) string {
	return fmt.Sprintf(`tell application %s
	open POSIX file %s
	activate
end tell`, quote(app), quote(path))
}

func exportScript(app, source, dest, format string) (string, error) {
	clause, ok := saveFormats[app][strings.ToLower(format)]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	return fmt.Sprintf(`tell application %s
	open POSIX file %s
	tell %s
		%s in POSIX file %s
	end tell
end tell`, quote(app), quote(source), activeObject[app], clause, quote(dest)), nil
}

func versionScript(app string) string {
	return fmt.Sprintf(`tell application %s
	return version
end tell`, quote(app))
}
