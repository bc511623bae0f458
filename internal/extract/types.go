package extract

import "context"

// Source identifies a text extraction modality.
type Source string

const (
	SourceOnScreen Source = "on_screen"
	SourceCaption  Source = "caption"
	SourceSpoken   Source = "spoken"
)

// TimeHint pairs a piece of extracted text with the playback position
// it was observed at, formatted HH:MM:SS.
type TimeHint struct {
	At   string
	Text string
}

// Result is the outcome of one extractor. A failed extractor carries
// Err and empty text; an extractor that ran but found nothing carries
// neither.
type Result struct {
	Source Source
	Text   string
	Hints  []TimeHint
	Err    error
}

// Succeeded reports whether the extractor ran and produced text.
func (r Result) Succeeded() bool {
	return r.Err == nil && r.Text != ""
}

// Input describes the staged media an extractor works from.
type Input struct {
	VideoURL  string
	VideoPath string
	WorkDir   string
}

// Extractor is one modality. Implementations must honor ctx and return
// rather than block when it is cancelled.
type Extractor interface {
	Source() Source
	Extract(ctx context.Context, input Input) (Result, error)
}
