package util

import "github.com/bwmarrin/snowflake"

var gsf *snowflake.Node

func init() {
	if n, err := snowflake.NewNode(1); err != nil {
		panic(err)
	} else {
		gsf = n
	}
}

// NewRunID returns a unique, time-ordered id used to correlate the log
// lines of one command run.
func NewRunID() string {
	return gsf.Generate().Base58()
}
