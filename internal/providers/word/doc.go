// Package word exposes Word documents as tools.
//
// A document is an ordered list of headings, paragraphs, lists and tables.
// GoWord has no in-place editing for opened files, so the list is rendered
// onto a fresh copy of the template (or a blank document) after every change
// and written to the working file.
//
// docx is written natively; pdf, doc, rtf and txt go through Word via the
// AppleScript bridge and fall back to docx when it is unavailable.
package word
