package docgram

import "context"

// AssetHost durably stores a rendered image under a stable name and returns
// the public URL at which it is retrievable. Hosting strictly precedes any
// publish attempt referencing the asset; a hosted asset left behind by a
// failed publish is kept in place so the next run can retry against the
// same URL.
type AssetHost interface {
	Store(ctx context.Context, name string, data []byte) (publicURL string, err error)
}
