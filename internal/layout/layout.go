// Package layout computes the block ordering for the horizontal-scroll
// experiment gallery. The ordering looks random but is produced by a linear
// congruential generator seeded from the experiment's column index, so a
// given experiment always renders the same way.
package layout

import "strings"

// BlockType discriminates gallery column blocks.
type BlockType string

const (
	BlockHeader BlockType = "header"
	BlockText   BlockType = "text"
	BlockImage  BlockType = "image"
)

// Block is one vertical slot in an experiment column. ImageIndex carries the
// asset index from the experiment's images list; Content carries text.
type Block struct {
	Type       BlockType `json:"type"`
	Content    string    `json:"content,omitempty"`
	ImageIndex int       `json:"imageIndex,omitempty"`
}

// lcg reproduces the generator the site has always used. The constants are
// load-bearing: changing them reshuffles every published column.
type lcg struct {
	seed int64
}

func newLCG(index int) *lcg {
	return &lcg{seed: int64(index) * 1000}
}

// next returns a value in [0, max). The float division order matches the
// original expression floor(seed/233280*max).
func (g *lcg) next(max int) int {
	g.seed = (g.seed*9301 + 49297) % 233280
	return int(float64(g.seed) / 233280 * float64(max))
}

// Blocks builds the column layout for one experiment: 2-4 text chunks
// interleaved with images following one of five seed-chosen patterns, with
// the header inserted at a seed-chosen position.
func Blocks(index int, text string, images []int) []Block {
	gen := newLCG(index)

	numChunks := 2 + gen.next(3)
	chunks := chunkWords(text, numChunks)
	used := make(map[int]struct{}, len(chunks))

	var blocks []Block
	pushText := func(i int) {
		if i < 0 || i >= len(chunks) {
			return
		}
		if _, ok := used[i]; ok {
			return
		}
		blocks = append(blocks, Block{Type: BlockText, Content: chunks[i]})
		used[i] = struct{}{}
	}
	pushImage := func(i int) {
		if i < 0 || i >= len(images) {
			return
		}
		blocks = append(blocks, Block{Type: BlockImage, ImageIndex: images[i]})
	}

	switch gen.next(5) {
	case 0:
		// Text, Image, Text, Image, ...
		for i := range images {
			pushText(i)
			pushImage(i)
		}
		for i := len(images); i < len(chunks); i++ {
			pushText(i)
		}
	case 1:
		// Image, Image, Text, Image, Text
		pushImage(0)
		pushImage(1)
		pushText(0)
		pushImage(2)
		pushText(1)
	case 2:
		// Text, Image, Image, Text, Image, Text
		pushText(0)
		pushImage(0)
		pushImage(1)
		pushText(1)
		pushImage(2)
		pushText(2)
	case 3:
		// Image, Text, Image, Text, Image, Text
		pushImage(0)
		pushText(0)
		pushImage(1)
		pushText(1)
		pushImage(2)
		pushText(2)
	default:
		// Text, Image, Text, Image, Image, Text
		pushText(0)
		pushImage(0)
		pushText(1)
		pushImage(1)
		pushImage(2)
		pushText(2)
	}

	for i := range chunks {
		pushText(i)
	}

	header := Block{Type: BlockHeader}
	position := gen.next(len(blocks) + 1)
	blocks = append(blocks[:position], append([]Block{header}, blocks[position:]...)...)
	return blocks
}

// chunkWords splits text into up to n word-balanced chunks, dropping empty
// remainders.
func chunkWords(text string, n int) []string {
	var words []string
	for _, word := range strings.Split(text, " ") {
		if word != "" {
			words = append(words, word)
		}
	}
	if len(words) == 0 || n <= 0 {
		return nil
	}

	perChunk := (len(words) + n - 1) / n
	var chunks []string
	for i := 0; i < n; i++ {
		start := i * perChunk
		if start >= len(words) {
			break
		}
		end := start + perChunk
		if end > len(words) {
			end = len(words)
		}
		chunk := strings.Join(words[start:end], " ")
		if strings.TrimSpace(chunk) != "" {
			chunks = append(chunks, chunk)
		}
	}
	return chunks
}
