// Package paths provides file path helpers shared by the document providers.
//
// Every session object owns a working file named after its handle inside
// the configured temp directory:
//
//	<temp_dir>/
//	  ├── 3f6c…e1.pptx   (presentation working file)
//	  ├── 9a02…7b.docx   (document working file)
//	  └── c81d…44.xlsx   (workbook working file)
//
// # Usage
//
//	dir, _ := paths.Expand("~/tmp/office365_mcp")
//	file := paths.WorkingFile(dir, handle, paths.ExtPPTX)
//
//	out, err := paths.PrepareOutput("~/Desktop/deck.pptx")
package paths
