package translate

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Destination ceilings for a single message. The per-block ceiling is
// authoritative when splitting; the aggregate ceiling is only reported.
const (
	MaxMessageChars      = 2000
	MaxBlockChars        = 4096
	MaxPayloadBlockChars = 6000
)

// BlockKind discriminates rich-content block types.
type BlockKind int

const (
	// BlockRich carries a span of message text too long or too rich for
	// plain content.
	BlockRich BlockKind = iota
	// BlockImage previews an uploaded image attachment.
	BlockImage
)

// Block is one rich-content unit of a payload.
type Block struct {
	Kind      BlockKind
	Text      string    // BlockRich: the text span
	Title     string    // BlockImage: caption
	ImageName string    // BlockImage: name of the attachment previewed
	Timestamp time.Time // BlockImage: original upload time
}

// Attachment is a file re-uploaded with the message.
type Attachment struct {
	Name        string
	ContentType string
	Data        []byte
}

// Payload is one destination-ready message.
type Payload struct {
	ID        string // source client_msg_id ("" when the source had none)
	Text      string // plain content ("" when demoted to blocks)
	Blocks    []Block
	Files     []Attachment
	ThreadKey string // source thread timestamp ("" outside threads)
}

// splitBlocks cuts text into rich blocks of at most MaxBlockChars each,
// breaking at the last newline inside each span when one exists. The
// newline stays with the following block, so concatenating the block texts
// reproduces the input exactly.
func splitBlocks(text string) []Block {
	var blocks []Block
	for len(text) > MaxBlockChars {
		cut := strings.LastIndexByte(text[:MaxBlockChars], '\n')
		if cut <= 0 {
			cut = hardCut(text)
		}
		blocks = append(blocks, Block{Kind: BlockRich, Text: text[:cut]})
		text = text[cut:]
	}
	if text != "" {
		blocks = append(blocks, Block{Kind: BlockRich, Text: text})
	}
	return blocks
}

// hardCut picks a split point for a span with no usable newline, backing up
// from the ceiling to a rune boundary.
func hardCut(text string) int {
	cut := MaxBlockChars
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	if cut == 0 {
		return MaxBlockChars
	}
	return cut
}
