package matcher

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// wordPieceTokenizer is a minimal BERT-compatible tokenizer backed by a
// vocab.txt file, sufficient for MiniLM-style sentence encoders.
type wordPieceTokenizer struct {
	vocab map[string]int64
	clsID int64
	sepID int64
	padID int64
	unkID int64
}

func loadWordPieceTokenizer(path string) (*wordPieceTokenizer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open vocab: %w", err)
	}
	defer f.Close()

	vocab := make(map[string]int64)
	sc := bufio.NewScanner(f)
	var idx int64
	for sc.Scan() {
		token := strings.TrimSpace(sc.Text())
		if token == "" {
			continue
		}
		vocab[token] = idx
		idx++
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan vocab: %w", err)
	}

	return &wordPieceTokenizer{
		vocab: vocab,
		clsID: vocab["[CLS]"],
		sepID: vocab["[SEP]"],
		padID: vocab["[PAD]"],
		unkID: vocab["[UNK]"],
	}, nil
}

// encode converts text into token IDs and an attention mask of length seqLen,
// truncating long inputs and padding short ones.
func (t *wordPieceTokenizer) encode(text string, seqLen int) ([]int64, []int64) {
	if seqLen <= 0 {
		return nil, nil
	}

	tokens := []int64{t.clsID}
	for _, word := range strings.Fields(strings.ToLower(text)) {
		tokens = append(tokens, t.wordPiece(word)...)
		if len(tokens) >= seqLen-1 {
			tokens = tokens[:seqLen-1]
			break
		}
	}
	tokens = append(tokens, t.sepID)

	attn := make([]int64, seqLen)
	for i := 0; i < len(tokens) && i < seqLen; i++ {
		attn[i] = 1
	}

	for len(tokens) < seqLen {
		tokens = append(tokens, t.padID)
	}

	return tokens, attn
}

// wordPiece splits one word greedily into the longest known vocab pieces,
// using the ## continuation prefix for non-initial pieces.
func (t *wordPieceTokenizer) wordPiece(word string) []int64 {
	if id, ok := t.vocab[word]; ok {
		return []int64{id}
	}

	var pieces []int64
	start := 0
	for start < len(word) {
		matched := false
		for end := len(word); end > start; end-- {
			sub := word[start:end]
			if start > 0 {
				sub = "##" + sub
			}
			if id, ok := t.vocab[sub]; ok {
				pieces = append(pieces, id)
				start = end
				matched = true
				break
			}
		}
		if !matched {
			return []int64{t.unkID}
		}
	}

	return pieces
}
