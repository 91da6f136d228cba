// SPDX-License-Identifier: GPL-3.0-or-later

package seriestore

import "github.com/cespare/xxhash/v2"

const (
	seriesShards    = 16
	seriesShardMask = seriesShards - 1
)

func seriesShardIndex(key string) int {
	if key == "" {
		return 0
	}
	return int(xxhash.Sum64String(key) & seriesShardMask)
}
