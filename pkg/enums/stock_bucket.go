package enums

// StockBucket classifies a simulated stock level for display urgency.
type StockBucket string

const (
	StockBucketHigh     StockBucket = "high"
	StockBucketMedium   StockBucket = "medium"
	StockBucketLow      StockBucket = "low"
	StockBucketCritical StockBucket = "critical"
)

// String implements fmt.Stringer.
func (b StockBucket) String() string {
	return string(b)
}

// ShowsCount reports whether the bucket displays an explicit unit count.
func (b StockBucket) ShowsCount() bool {
	return b == StockBucketLow || b == StockBucketCritical
}
