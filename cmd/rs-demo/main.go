package main

import (
	"bytes"
	"crypto/rand"
	"encoding/json"
	"flag"
	"fmt"
	"math/big"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/wanqizhu/finitefield/field"
	"github.com/wanqizhu/finitefield/rs"
)

// DemoResult stores the outcome of one encode, corrupt and decode round trip
type DemoResult struct {
	FieldOrder  int           `json:"field_order"`
	N           int           `json:"n"`
	K           int           `json:"k"`
	MessageLen  int           `json:"message_len"` // bytes
	Blocks      int           `json:"blocks"`
	Errors      int           `json:"errors_per_block"`
	MaxErrors   int           `json:"max_errors_per_block"`
	Recovered   bool          `json:"recovered"`
	DecodeError string        `json:"decode_error,omitempty"`
	EncodeTime  time.Duration `json:"encode_ns"`
	DecodeTime  time.Duration `json:"decode_ns"`
}

func parseReduction(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	coefs := make([]int, len(parts))
	for i, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("coefficient %q: %v", part, err)
		}
		coefs[i] = v
	}
	return coefs, nil
}

func main() {
	// Parse command-line flags
	message := flag.String("message", "the quick brown fox jumps over the lazy dog", "Message to encode")
	errCount := flag.Int("errors", 4, "Number of symbols to corrupt in every codeword")
	p := flag.Int("p", 113, "Field characteristic (must be prime)")
	m := flag.Int("m", 1, "Field extension degree")
	reduction := flag.String("reduction", "", "Reduction polynomial coefficients in ascending order, comma separated (required when m > 1)")
	n := flag.Int("n", 16, "Codeword length in symbols")
	k := flag.Int("k", 8, "Message length in symbols")
	outputFile := flag.String("output", "", "Optional output file for the JSON result")
	flag.Parse()

	coefs, err := parseReduction(*reduction)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Bad reduction polynomial: %v\n", err)
		os.Exit(1)
	}

	f, err := field.NewFieldFromConfig(&field.FieldConfig{
		P:              *p,
		M:              *m,
		Reduction:      coefs,
		EagerPrimitive: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create the field: %v\n", err)
		os.Exit(1)
	}

	if *n > f.Order() {
		fmt.Fprintf(os.Stderr, "Codeword length %d needs more evaluation points than %s holds\n", *n, f)
		os.Exit(1)
	}
	points := make([]field.Element, *n)
	for i := range points {
		points[i] = f.FromRank(i)
	}
	code, err := rs.NewCode(&rs.Config{Field: f, N: *n, K: *k, EvalPoints: points})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create the code: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Encoding over %s with:\n", f)
	fmt.Printf("  Codeword length:  %d symbols\n", code.N())
	fmt.Printf("  Message length:   %d symbols\n", code.K())
	fmt.Printf("  Error budget:     %d symbols per codeword\n", code.MaxErrors())
	fmt.Printf("  Corrupting:       %d symbols per codeword\n", *errCount)
	fmt.Println()

	if *errCount > code.MaxErrors() {
		fmt.Printf("Warning: %d errors exceed the budget, recovery is not guaranteed\n\n", *errCount)
	}

	result := DemoResult{
		FieldOrder: f.Order(),
		N:          code.N(),
		K:          code.K(),
		MessageLen: len(*message),
		Errors:     *errCount,
		MaxErrors:  code.MaxErrors(),
	}

	start := time.Now()
	codewords, err := code.EncodeBytes([]byte(*message))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to encode: %v\n", err)
		os.Exit(1)
	}
	result.EncodeTime = time.Since(start)
	result.Blocks = len(codewords)
	fmt.Printf("Encoded %d bytes into %d codewords in %v\n", len(*message), len(codewords), result.EncodeTime)

	// Corrupt distinct positions in every codeword
	order := big.NewInt(int64(f.Order()))
	for _, codeword := range codewords {
		hit := make(map[int]bool)
		for len(hit) < *errCount && len(hit) < code.N() {
			idx, err := rand.Int(rand.Reader, big.NewInt(int64(code.N())))
			if err != nil {
				fmt.Fprintf(os.Stderr, "Failed to pick a position: %v\n", err)
				os.Exit(1)
			}
			pos := int(idx.Int64())
			if hit[pos] {
				continue
			}
			hit[pos] = true

			// a delta of nonzero rank always changes the symbol
			deltaRank, err := rand.Int(rand.Reader, new(big.Int).Sub(order, big.NewInt(1)))
			if err != nil {
				fmt.Fprintf(os.Stderr, "Failed to pick a delta: %v\n", err)
				os.Exit(1)
			}
			codeword[pos] = codeword[pos].Add(f.FromRank(1 + int(deltaRank.Int64())))
		}
	}

	start = time.Now()
	decoded, err := code.DecodeBytes(codewords, len(*message))
	result.DecodeTime = time.Since(start)
	if err != nil {
		result.DecodeError = err.Error()
		fmt.Printf("Decode failed after %v: %v\n", result.DecodeTime, err)
	} else {
		result.Recovered = bytes.Equal(decoded, []byte(*message))
		fmt.Printf("Decoded in %v\n", result.DecodeTime)
		fmt.Printf("Recovered message: %q\n", decoded)
	}

	if result.Recovered {
		fmt.Println("\nRound trip succeeded")
	} else {
		fmt.Println("\nRound trip failed to recover the original message")
	}

	if *outputFile != "" {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to marshal the result: %v\n", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*outputFile, data, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write the result: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Result written to: %s\n", *outputFile)
	}

	if !result.Recovered {
		os.Exit(1)
	}
}
