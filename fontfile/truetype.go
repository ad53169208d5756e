// Package fontfile supplies optional, out-of-the-box implementations of
// the font.Record interface so callers have something runnable without
// writing their own font collaborator. TrueType parses a .ttf/.otf file
// directly into a font.Record; callers needing Type1 or CFF, or their own
// acquisition strategy (network, embed.FS, subsetting), implement
// font.Record themselves — the core never imports this package.
package fontfile

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/coregx/pdfgen/font"
)

// TrueType is a font.Record backed by a parsed TrueType/OpenType font
// file, embedding the whole font program as /FontFile2. It maps one-byte
// codes directly through the font's best Unicode cmap subtable
// (platformID=3, encodingID=1), so it only serves codes whose rune value
// the font's cmap actually maps — matching the one-byte-encoding Non-goal.
type TrueType struct {
	data           []byte
	tables         map[string]ttfTable
	postScriptName string

	unitsPerEm uint16
	charToGID  map[rune]uint16
	gidWidths  map[uint16]uint16

	fontBBox        [4]int16
	ascender        int16
	descender       int16
	lineGap         int16
	italicAngle     float64
	isFixedPitch    bool
	capHeight       int16
	xHeight         int16
	weightClass     uint16
	typoAscender    int16
	typoDescender   int16
	stemV           int16
	flags           uint32
}

type ttfTable struct {
	offset, length uint32
	data           []byte
}

// Load reads and parses the TrueType/OpenType font at path.
func Load(path string) (*TrueType, error) {
	//nolint:gosec // font file path is caller-controlled, not arbitrary input.
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fontfile: read %s: %w", path, err)
	}
	tt := &TrueType{
		data:      data,
		tables:    make(map[string]ttfTable),
		charToGID: make(map[rune]uint16),
		gidWidths: make(map[uint16]uint16),
	}
	if err := tt.parse(data); err != nil {
		return nil, fmt.Errorf("fontfile: parse %s: %w", path, err)
	}
	if tt.postScriptName == "" {
		base := filepath.Base(path)
		tt.postScriptName = strings.ReplaceAll(strings.TrimSuffix(base, filepath.Ext(base)), " ", "")
	}
	return tt, nil
}

func (t *TrueType) parse(data []byte) error {
	if err := t.parseDirectory(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("directory: %w", err)
	}
	for tag, tbl := range t.tables {
		if tbl.offset+tbl.length > uint32(len(data)) {
			return fmt.Errorf("table %s out of bounds", tag)
		}
		tbl.data = data[tbl.offset : tbl.offset+tbl.length]
		t.tables[tag] = tbl
	}
	if err := t.parseHead(); err != nil {
		return fmt.Errorf("head: %w", err)
	}
	if err := t.parseHhea(); err != nil {
		return fmt.Errorf("hhea: %w", err)
	}
	if err := t.parseHmtx(); err != nil {
		return fmt.Errorf("hmtx: %w", err)
	}
	if err := t.parseCmap(); err != nil {
		return fmt.Errorf("cmap: %w", err)
	}
	if _, ok := t.tables["post"]; ok {
		_ = t.parsePost() // best effort; defaults stand on failure
	}
	if _, ok := t.tables["OS/2"]; ok {
		if err := t.parseOS2(); err != nil {
			t.capHeight = t.ascender
		}
	} else {
		t.capHeight = int16(float64(t.ascender) * 0.7)
		t.xHeight = int16(float64(t.ascender) * 0.5)
	}
	if _, ok := t.tables["name"]; ok {
		_ = t.parseName()
	}
	t.deriveFlags()
	return nil
}

func (t *TrueType) parseDirectory(r io.Reader) error {
	var version uint32
	if err := binary.Read(r, binary.BigEndian, &version); err != nil {
		return err
	}
	if version != 0x00010000 && version != 0x4F54544F { // TrueType or 'OTTO' CFF
		return fmt.Errorf("unsupported sfnt version 0x%08X", version)
	}
	var numTables uint16
	if err := binary.Read(r, binary.BigEndian, &numTables); err != nil {
		return err
	}
	if _, err := io.CopyN(io.Discard, r, 6); err != nil {
		return err
	}
	for i := uint16(0); i < numTables; i++ {
		tagBytes := make([]byte, 4)
		if _, err := io.ReadFull(r, tagBytes); err != nil {
			return err
		}
		var checksum, offset, length uint32
		if err := binary.Read(r, binary.BigEndian, &checksum); err != nil {
			return err
		}
		if err := binary.Read(r, binary.BigEndian, &offset); err != nil {
			return err
		}
		if err := binary.Read(r, binary.BigEndian, &length); err != nil {
			return err
		}
		t.tables[string(tagBytes)] = ttfTable{offset: offset, length: length}
	}
	return nil
}

func skip(r *bytes.Reader, n int64) error {
	_, err := r.Seek(n, io.SeekCurrent)
	return err
}

func (t *TrueType) parseHead() error {
	tbl, ok := t.tables["head"]
	if !ok {
		return fmt.Errorf("head table not found")
	}
	r := bytes.NewReader(tbl.data)
	if err := skip(r, 16); err != nil {
		return err
	}
	if err := skip(r, 2); err != nil {
		return err
	}
	if err := binary.Read(r, binary.BigEndian, &t.unitsPerEm); err != nil {
		return err
	}
	if err := skip(r, 16); err != nil {
		return err
	}
	for i := 0; i < 4; i++ {
		if err := binary.Read(r, binary.BigEndian, &t.fontBBox[i]); err != nil {
			return err
		}
	}
	return nil
}

func (t *TrueType) parseHhea() error {
	tbl, ok := t.tables["hhea"]
	if !ok {
		return fmt.Errorf("hhea table not found")
	}
	r := bytes.NewReader(tbl.data)
	if err := skip(r, 4); err != nil {
		return err
	}
	if err := binary.Read(r, binary.BigEndian, &t.ascender); err != nil {
		return err
	}
	if err := binary.Read(r, binary.BigEndian, &t.descender); err != nil {
		return err
	}
	return binary.Read(r, binary.BigEndian, &t.lineGap)
}

func (t *TrueType) parseHmtx() error {
	hmtx, ok := t.tables["hmtx"]
	if !ok {
		return fmt.Errorf("hmtx table not found")
	}
	hhea, ok := t.tables["hhea"]
	if !ok || len(hhea.data) < 36 {
		return fmt.Errorf("hhea required for hmtx")
	}
	numHMetrics := binary.BigEndian.Uint16(hhea.data[34:])
	r := bytes.NewReader(hmtx.data)
	for gid := uint16(0); gid < numHMetrics; gid++ {
		var advance uint16
		if err := binary.Read(r, binary.BigEndian, &advance); err != nil {
			return err
		}
		if err := skip(r, 2); err != nil {
			return err
		}
		t.gidWidths[gid] = advance
	}
	return nil
}

func (t *TrueType) parseCmap() error {
	tbl, ok := t.tables["cmap"]
	if !ok {
		return fmt.Errorf("cmap table not found")
	}
	r := bytes.NewReader(tbl.data[4:])
	var numTables uint16
	{
		rr := bytes.NewReader(tbl.data)
		if err := skip(rr, 2); err != nil {
			return err
		}
		if err := binary.Read(rr, binary.BigEndian, &numTables); err != nil {
			return err
		}
	}

	var best uint32
	found := false
	for i := uint16(0); i < numTables; i++ {
		var platformID, encodingID uint16
		var offset uint32
		if err := binary.Read(r, binary.BigEndian, &platformID); err != nil {
			return err
		}
		if err := binary.Read(r, binary.BigEndian, &encodingID); err != nil {
			return err
		}
		if err := binary.Read(r, binary.BigEndian, &offset); err != nil {
			return err
		}
		if platformID == 3 && encodingID == 1 {
			best, found = offset, true
		}
	}
	if !found {
		return fmt.Errorf("no Windows Unicode BMP cmap subtable")
	}
	return t.parseCmapFormat4(tbl.data, best)
}

func (t *TrueType) parseCmapFormat4(data []byte, offset uint32) error {
	r := bytes.NewReader(data[offset:])
	var format uint16
	if err := binary.Read(r, binary.BigEndian, &format); err != nil {
		return err
	}
	if format != 4 {
		return fmt.Errorf("cmap format %d not supported", format)
	}
	if err := skip(r, 4); err != nil { // length, language
		return err
	}
	var segCountX2 uint16
	if err := binary.Read(r, binary.BigEndian, &segCountX2); err != nil {
		return err
	}
	segCount := segCountX2 / 2
	if err := skip(r, 6); err != nil { // searchRange, entrySelector, rangeShift
		return err
	}

	endCode := make([]uint16, segCount)
	for i := range endCode {
		if err := binary.Read(r, binary.BigEndian, &endCode[i]); err != nil {
			return err
		}
	}
	if err := skip(r, 2); err != nil { // reservedPad
		return err
	}
	startCode := make([]uint16, segCount)
	for i := range startCode {
		if err := binary.Read(r, binary.BigEndian, &startCode[i]); err != nil {
			return err
		}
	}
	idDelta := make([]int16, segCount)
	for i := range idDelta {
		if err := binary.Read(r, binary.BigEndian, &idDelta[i]); err != nil {
			return err
		}
	}
	idRangeOffset := make([]uint16, segCount)
	for i := range idRangeOffset {
		if err := binary.Read(r, binary.BigEndian, &idRangeOffset[i]); err != nil {
			return err
		}
	}
	idRangeOffsetStart := offset + 14 + uint32(segCount)*6 + 2
	glyphIDArray := data[idRangeOffsetStart+uint32(segCount)*2:]

	for i := uint16(0); i < segCount; i++ {
		for code := startCode[i]; code <= endCode[i] && code != 0xFFFF; code++ {
			var gid uint16
			if idRangeOffset[i] == 0 {
				gid = uint16(int32(code) + int32(idDelta[i]))
			} else {
				idx := int(idRangeOffset[i])/2 - int(segCount-i) + int(code-startCode[i])
				if idx < 0 || idx*2+1 >= len(glyphIDArray) {
					continue
				}
				gid = binary.BigEndian.Uint16(glyphIDArray[idx*2:])
				if gid != 0 {
					gid = uint16(int32(gid) + int32(idDelta[i]))
				}
			}
			if gid != 0 {
				t.charToGID[rune(code)] = gid
			}
			if code == endCode[i] {
				break
			}
		}
	}
	return nil
}

func (t *TrueType) parsePost() error {
	tbl, ok := t.tables["post"]
	if !ok || len(tbl.data) < 32 {
		return fmt.Errorf("post table missing or too short")
	}
	r := bytes.NewReader(tbl.data)
	if err := skip(r, 4); err != nil {
		return err
	}
	var italicFixed int32
	if err := binary.Read(r, binary.BigEndian, &italicFixed); err != nil {
		return err
	}
	t.italicAngle = float64(italicFixed) / 65536.0
	if err := skip(r, 4); err != nil { // underlinePosition, underlineThickness
		return err
	}
	var fixedPitch uint32
	if err := binary.Read(r, binary.BigEndian, &fixedPitch); err != nil {
		return err
	}
	t.isFixedPitch = fixedPitch != 0
	return nil
}

func (t *TrueType) parseOS2() error {
	tbl, ok := t.tables["OS/2"]
	if !ok || len(tbl.data) < 78 {
		return fmt.Errorf("OS/2 table missing or too short")
	}
	r := bytes.NewReader(tbl.data)
	var version uint16
	if err := binary.Read(r, binary.BigEndian, &version); err != nil {
		return err
	}
	if err := skip(r, 2); err != nil {
		return err
	}
	if err := binary.Read(r, binary.BigEndian, &t.weightClass); err != nil {
		return err
	}
	if err := skip(r, 2+2); err != nil { // widthClass, fsType
		return err
	}
	if err := skip(r, 58); err != nil {
		return err
	}
	if err := binary.Read(r, binary.BigEndian, &t.typoAscender); err != nil {
		return err
	}
	if err := binary.Read(r, binary.BigEndian, &t.typoDescender); err != nil {
		return err
	}
	if err := skip(r, 6); err != nil {
		return err
	}
	if version >= 2 && len(tbl.data) >= 96 {
		if err := skip(r, 8); err != nil {
			return err
		}
		if err := binary.Read(r, binary.BigEndian, &t.xHeight); err != nil {
			return err
		}
		if err := binary.Read(r, binary.BigEndian, &t.capHeight); err != nil {
			return err
		}
	} else {
		t.capHeight = int16(float64(t.ascender) * 0.7)
		t.xHeight = int16(float64(t.ascender) * 0.5)
	}
	return nil
}

func (t *TrueType) parseName() error {
	tbl := t.tables["name"]
	if len(tbl.data) < 6 {
		return fmt.Errorf("name table too short")
	}
	r := bytes.NewReader(tbl.data)
	if err := skip(r, 2); err != nil {
		return err
	}
	var count, stringOffset uint16
	if err := binary.Read(r, binary.BigEndian, &count); err != nil {
		return err
	}
	if err := binary.Read(r, binary.BigEndian, &stringOffset); err != nil {
		return err
	}
	for i := uint16(0); i < count; i++ {
		var platformID, encodingID, languageID, nameID, length, offset uint16
		for _, f := range []*uint16{&platformID, &encodingID, &languageID, &nameID, &length, &offset} {
			if err := binary.Read(r, binary.BigEndian, f); err != nil {
				return err
			}
		}
		if nameID != 6 {
			continue
		}
		start := uint32(stringOffset) + uint32(offset)
		end := start + uint32(length)
		if end > uint32(len(tbl.data)) {
			continue
		}
		raw := tbl.data[start:end]
		if platformID == 3 {
			t.postScriptName = decodeUTF16BE(raw)
		} else {
			t.postScriptName = string(raw)
		}
		return nil
	}
	return nil
}

func decodeUTF16BE(data []byte) string {
	if len(data)%2 != 0 {
		return ""
	}
	runes := make([]rune, 0, len(data)/2)
	for i := 0; i < len(data); i += 2 {
		runes = append(runes, rune(binary.BigEndian.Uint16(data[i:])))
	}
	return string(runes)
}

func (t *TrueType) deriveFlags() {
	switch {
	case t.weightClass <= 300:
		t.stemV = 50 + int16(t.weightClass/10)
	case t.weightClass <= 500:
		t.stemV = 80 + int16((t.weightClass-400)/5)
	case t.weightClass <= 700:
		t.stemV = 100 + int16((t.weightClass-500)/5)
	default:
		t.stemV = 130 + int16((t.weightClass-700)/10)
	}
	if t.stemV == 0 || t.weightClass == 0 {
		t.stemV = 80
	}

	t.flags = 32 // nonsymbolic
	if t.isFixedPitch {
		t.flags |= 1
	}
	if t.italicAngle != 0 {
		t.flags |= 64
	}
}

// --- font.Record ---

func (t *TrueType) BaseFont() string { return t.postScriptName }
func (t *TrueType) Subtype() font.Subtype { return font.TrueType }
func (t *TrueType) FirstChar() int        { return 32 }
func (t *TrueType) LastChar() int         { return 255 }
func (t *TrueType) EmSquare() int         { return int(t.unitsPerEm) }

func (t *TrueType) GlyphWidth(code int) int {
	if code < t.FirstChar() || code > t.LastChar() {
		return 0
	}
	gid, ok := t.charToGID[rune(code)]
	if !ok {
		return 0
	}
	return int(t.gidWidths[gid])
}

func (t *TrueType) Ascent() int          { return int(t.ascender) }
func (t *TrueType) Descent() int         { return int(t.descender) }
func (t *TrueType) CapHeight() int       { return int(t.capHeight) }
func (t *TrueType) XHeight() int         { return int(t.xHeight) }
func (t *TrueType) InternalLeading() int { return int(t.lineGap) }
func (t *TrueType) ExternalLeading() int { return 0 }
func (t *TrueType) ItalicAngle() float64 { return t.italicAngle }
func (t *TrueType) StemV() int           { return int(t.stemV) }
func (t *TrueType) FontBBox() [4]int {
	return [4]int{int(t.fontBBox[0]), int(t.fontBBox[1]), int(t.fontBBox[2]), int(t.fontBBox[3])}
}

// FontFile returns the whole font program for embedding as /FontFile2.
// TrueType embedding has no Length1/Length2/Length3 split (that's a Type1
// .pfb convention), so all three are 0 and ignored by Document.writeFontFile.
func (t *TrueType) FontFile() (data []byte, length1, length2, length3 int, ok bool) {
	return t.data, 0, 0, 0, true
}
