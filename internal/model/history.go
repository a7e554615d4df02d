package model

import "time"

// HistoryPoint is one automatically recorded value change in a bounded,
// deduplicated series.
type HistoryPoint struct {
	ID         string    `json:"id"`
	CapturedAt time.Time `json:"capturedAt"`
	Value      float64   `json:"value"`
}

// Snapshot is a manually captured net-worth point, independent of the
// automatic history series.
type Snapshot struct {
	ID         string    `json:"id"`
	CapturedAt time.Time `json:"capturedAt"`
	Value      float64   `json:"value"`
}

// Bucket names one of the four category series.
type Bucket string

const (
	BucketCards  Bucket = "cards"
	BucketDebts  Bucket = "debts"
	BucketCrypto Bucket = "crypto"
	BucketAssets Bucket = "assets"
)

// Buckets lists the category series in display order.
var Buckets = []Bucket{BucketCards, BucketDebts, BucketCrypto, BucketAssets}

// CategoryHistory holds the per-bucket change series.
type CategoryHistory struct {
	Cards  []HistoryPoint `json:"cards"`
	Debts  []HistoryPoint `json:"debts"`
	Crypto []HistoryPoint `json:"crypto"`
	Assets []HistoryPoint `json:"assets"`
}

// Series returns the series for a bucket, or nil for an unknown bucket.
func (h *CategoryHistory) Series(b Bucket) *[]HistoryPoint {
	switch b {
	case BucketCards:
		return &h.Cards
	case BucketDebts:
		return &h.Debts
	case BucketCrypto:
		return &h.Crypto
	case BucketAssets:
		return &h.Assets
	}
	return nil
}
