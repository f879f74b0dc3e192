package arinc

import (
	"bufio"
	"os"
)

// ReadSnapshot reads one snapshot file, discarding header/footer markers
// and short lines, normalizing every surviving line to Width characters,
// and applying the filter. Lines are kept as raw byte strings: the input
// encoding is single-byte-per-character, so 1-indexed column math stays
// valid without decoding.
func ReadSnapshot(path string, filter Filter) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var out []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		raw := scanner.Text()
		if IsHeaderOrFooter(raw) || !IsRecord(raw) {
			continue
		}
		line := Normalize(raw)
		if !filter.Matches(line) {
			continue
		}
		out = append(out, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// BucketByType partitions normalized lines by canonical type code,
// preserving file order within each bucket
func BucketByType(lines []string) map[string][]string {
	buckets := make(map[string][]string)
	for _, line := range lines {
		code := TypeCode(line)
		buckets[code] = append(buckets[code], line)
	}
	return buckets
}
