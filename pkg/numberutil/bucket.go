package numberutil

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// BucketDuration is the time span covered by one message partition.
const BucketDuration int64 = 1000 * 60 * 60 * 24 * 10 // 10 days

// BucketFrom returns the partition bucket of a snowflake id. A zero id means
// the current bucket.
func BucketFrom(id int64) int64 {
	if id != 0 {
		return snowflake.ParseInt64(id).Time() / BucketDuration
	}

	return time.Now().UnixMilli() / BucketDuration
}

// BucketOf returns the bucket containing t.
func BucketOf(t time.Time) int64 {
	return t.UnixMilli() / BucketDuration
}
