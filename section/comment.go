package section

import (
	"bytes"
	"strings"
)

// CommentInfo holds the lines of a .comment section, such as producer
// strings.
type CommentInfo []string

// Bytes encodes the lines the way .comment is laid out: each line followed by
// a NUL byte.
func (c CommentInfo) Bytes() []byte {
	var b bytes.Buffer
	for _, line := range c {
		b.WriteString(line)
		b.WriteByte(0)
	}

	return b.Bytes()
}

// ParseComment splits a .comment payload into lines at each NUL terminator.
// Empty lines are kept, so ParseComment(c.Bytes()) equals c. A final line
// without a terminator is kept as well.
func ParseComment(data []byte) CommentInfo {
	if len(data) == 0 {
		return CommentInfo{}
	}

	text := strings.TrimSuffix(string(data), "\x00")

	return strings.Split(text, "\x00")
}
