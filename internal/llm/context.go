package llm

import "context"

// Purpose labels why a request was made. It is stored with every logged
// call so `lectiz llm stats` can break usage down per feature.
type Purpose string

const (
	PurposeReadingContent Purpose = "reading-content"
	PurposeUnknown        Purpose = "unknown"
)

type purposeKey struct{}

// WithPurpose returns ctx labelled with p.
func WithPurpose(ctx context.Context, p Purpose) context.Context {
	return context.WithValue(ctx, purposeKey{}, p)
}

// PurposeFrom returns the label set by WithPurpose, or PurposeUnknown.
func PurposeFrom(ctx context.Context) Purpose {
	if p, ok := ctx.Value(purposeKey{}).(Purpose); ok && p != "" {
		return p
	}
	return PurposeUnknown
}
