package automatic

import (
	"bufio"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"
	"strings"
)

const seedFileHeader = "# Solitaire deal seeds, base64 URL-safe, 32 bytes each"

// GenerateSeeds makes n random deal seeds. The same seed always deals the
// same game.
func GenerateSeeds(n int) ([][32]byte, error) {
	seeds := make([][32]byte, n)
	for i := range seeds {
		if _, err := rand.Read(seeds[i][:]); err != nil {
			return nil, fmt.Errorf("failed to generate seed %d: %w", i, err)
		}
	}
	return seeds, nil
}

// SaveSeeds writes one seed per line.
func SaveSeeds(seeds [][32]byte, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create seed file: %w", err)
	}
	w := bufio.NewWriter(file)
	fmt.Fprintln(w, seedFileHeader)
	for _, seed := range seeds {
		fmt.Fprintln(w, base64.RawURLEncoding.EncodeToString(seed[:]))
	}
	if err := w.Flush(); err != nil {
		file.Close()
		return fmt.Errorf("failed to write seed file: %w", err)
	}
	return file.Close()
}

// LoadSeeds reads a file written by SaveSeeds. Blank lines and lines
// starting with # are skipped.
func LoadSeeds(path string) ([][32]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer file.Close()

	var seeds [][32]byte
	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		seed, err := ParseSeed(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		seeds = append(seeds, seed)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading seed file: %w", err)
	}
	return seeds, nil
}

// ParseSeed decodes one seed as written by SaveSeeds or the game log.
func ParseSeed(s string) ([32]byte, error) {
	var seed [32]byte
	decoded, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return seed, fmt.Errorf("failed to decode seed: %w", err)
	}
	if len(decoded) != len(seed) {
		return seed, fmt.Errorf("invalid seed length: got %d bytes, expected %d", len(decoded), len(seed))
	}
	copy(seed[:], decoded)
	return seed, nil
}
