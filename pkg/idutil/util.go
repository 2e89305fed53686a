package idutil

import (
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
)

var (
	nodeOnce sync.Once
	node     *snowflake.Node
	nodeErr  error
	nodeID   int64
)

// SetNode selects the snowflake node of this process. It must be called
// before the first NextID to take effect.
func SetNode(id int64) {
	nodeID = id
}

// NextID returns a unique, time ordered identifier.
func NextID() (int64, error) {
	nodeOnce.Do(func() {
		node, nodeErr = snowflake.NewNode(nodeID)
	})
	if nodeErr != nil {
		return 0, nodeErr
	}

	return node.Generate().Int64(), nil
}

// TimeOf returns the creation time encoded in a snowflake id.
func TimeOf(id int64) time.Time {
	return time.UnixMilli(snowflake.ParseInt64(id).Time())
}
