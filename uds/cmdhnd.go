package uds

import "io"

// CmdHnd is one control socket command. Fn writes its human-readable
// result to w; a returned error is reported to the socket client.
type CmdHnd struct {
	Desc  string
	Usage string
	Fn    func(args []string, w io.Writer) error
}
