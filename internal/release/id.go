package release

import (
	"crypto/md5"
	"encoding/hex"
	"time"
)

// ClusterID hex MD5 of the day as YYYYMMDD followed by the cluster name.
// Stable for the same cluster on the same day.
func ClusterID(day time.Time, name string) string {
	sum := md5.Sum([]byte(day.Format("20060102") + name))
	return hex.EncodeToString(sum[:])
}
