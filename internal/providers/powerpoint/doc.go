// Package powerpoint exposes PowerPoint presentations as tools.
//
// Decks are built with GoPPT. Each one lives in memory under a UUID handle and
// is written to its working file after every change. Slides get prefixed ULID
// IDs so text, image and notes calls can address them without the deck ID.
//
// Layouts follow the default master: Title Slide, Title and Content, Section
// Header, Two Content, Comparison, Title Only, Blank, Content with Caption and
// Picture with Caption. Unknown names fall back to Title and Content.
//
// pptx is written natively; pdf and ppt go through PowerPoint via the
// AppleScript bridge and fall back to pptx when it is unavailable.
package powerpoint
