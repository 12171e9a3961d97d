package generator

import (
	"strconv"
	"strings"
)

var (
	nricPrefixes  = []string{"S", "T", "F", "G"}
	nricChecksums = "ABCDEFGHIZJKLMN" // fake alphabet; just looks valid
)

// nricNumber builds an NRIC-like string: prefix, seven digits, checksum
// letter. The checksum is decorative, not the real algorithm.
func (g *Generator) nricNumber() string {
	var sb strings.Builder
	sb.WriteString(nricPrefixes[g.rng.Intn(len(nricPrefixes))])
	for i := 0; i < 7; i++ {
		sb.WriteByte(byte('0' + g.rng.Intn(10)))
	}
	sb.WriteByte(nricChecksums[g.rng.Intn(len(nricChecksums))])
	return sb.String()
}

// passportNumber builds a synthetic passport number: two uppercase letters
// and seven digits.
func (g *Generator) passportNumber() string {
	var sb strings.Builder
	sb.WriteByte(byte('A' + g.rng.Intn(26)))
	sb.WriteByte(byte('A' + g.rng.Intn(26)))
	sb.WriteString(strconv.Itoa(1000000 + g.rng.Intn(9000000)))
	return sb.String()
}
