package xlcsv

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ukaji3/xlcsv-go/pkg/xlcsv/models"
	"github.com/ukaji3/xlcsv-go/pkg/xlcsv/output"
)

// writeWorkbook saves a workbook whose first sheet holds the two-row
// scenario: A1=1, B1="hi,there", B2=true. A second sheet "Blank" is empty.
func writeWorkbook(t *testing.T, name string) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetCellValue("Sheet1", "A1", 1))
	require.NoError(t, f.SetCellValue("Sheet1", "B1", "hi,there"))
	require.NoError(t, f.SetCellValue("Sheet1", "B2", true))
	_, err := f.NewSheet("Blank")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, f.SaveAs(path))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestConvertBuffered(t *testing.T) {
	path := writeWorkbook(t, "book.xlsx")

	opts := DefaultOptions()
	opts.Profile = true
	result, err := Convert(path, opts)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(filepath.Dir(path), "book.csv"), result.Destination)
	assert.Equal(t, "1,\"hi,there\"\n,true\n", readFile(t, result.Destination))
	assert.Equal(t, models.SheetRef{Index: 0, Name: "Sheet1"}, result.Sheet)
	assert.Equal(t, 2, result.Width)
	assert.Equal(t, 2, result.Lines)
	assert.Equal(t, 3, result.Cells)

	require.NotNil(t, result.Bounds)
	assert.Equal(t, models.Dimension{End: models.CellPosition{Row: 1, Col: 1}}, result.Bounds.Dimension)
	assert.Equal(t, 3, result.Bounds.NonEmpty)
	if result.HasDeclared {
		assert.True(t, result.Declared.Contains(result.Bounds.Dimension.End))
	}

	require.NotNil(t, result.Profile)
	require.Len(t, result.Profile.Columns, 2)
	assert.Equal(t, "1", result.Profile.Columns[0].Label)
	assert.Equal(t, "hi,there", result.Profile.Columns[1].Label)
	assert.Equal(t, 3, result.Profile.Total.Total())
}

func TestConvertStreamingScenario(t *testing.T) {
	path := writeWorkbook(t, "book.xlsx")

	opts := DefaultOptions()
	opts.Mode = ModeStreaming
	result, err := Convert(path, opts)
	require.NoError(t, err)

	assert.Equal(t, "1,\"hi,there\"\n,true\n", readFile(t, result.Destination))
	assert.Equal(t, 2, result.Lines)
	assert.Nil(t, result.Profile)
	assert.Nil(t, result.Bounds)
}

func TestConvertRaggedSheetWithDeclaredDimension(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "a"))
	require.NoError(t, f.SetCellValue("Sheet1", "B1", "b"))
	require.NoError(t, f.SetCellValue("Sheet1", "A3", "c"))
	require.NoError(t, f.SetSheetDimension("Sheet1", "A1:B3"))
	path := filepath.Join(t.TempDir(), "ragged.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	// Streaming pads to the declared width, so both modes agree here.
	for _, mode := range []Mode{ModeBuffered, ModeStreaming} {
		opts := DefaultOptions()
		opts.Mode = mode
		result, err := Convert(path, opts)
		require.NoError(t, err, mode)
		assert.Equal(t, "a,b\n,\nc,\n", readFile(t, result.Destination), mode)
	}
}

func TestConvertDialect(t *testing.T) {
	path := writeWorkbook(t, "book.XLSX")

	opts := DefaultOptions()
	opts.Delimiter = ';'
	opts.LineEnding = output.CRLF
	noQuote := false
	opts.Quote = &noQuote
	result, err := Convert(path, opts)
	require.NoError(t, err)

	assert.Equal(t, "1;hi,there\r\n;true\r\n", readFile(t, result.Destination))
}

func TestConvertEmptySheet(t *testing.T) {
	path := writeWorkbook(t, "book.xlsx")

	for _, mode := range []Mode{ModeBuffered, ModeStreaming} {
		opts := DefaultOptions()
		opts.Mode = mode
		opts.Sheet = "Blank"
		result, err := Convert(path, opts)
		require.NoError(t, err, mode)

		assert.Empty(t, readFile(t, result.Destination), mode)
		assert.Equal(t, 0, result.Lines, mode)
		assert.Equal(t, 0, result.Width, mode)
	}
}

func TestConvertOverwritesDestination(t *testing.T) {
	path := writeWorkbook(t, "book.xlsx")
	dest := Destination(path, output.CompressionNone)
	require.NoError(t, os.WriteFile(dest, []byte("stale content that is longer\n"), 0644))

	_, err := Convert(path, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "1,\"hi,there\"\n,true\n", readFile(t, dest))
}

func TestConvertCompressed(t *testing.T) {
	path := writeWorkbook(t, "book.xlsx")

	tests := []struct {
		compression output.Compression
		suffix      string
		open        func(io.Reader) (io.Reader, error)
	}{
		{output.CompressionGzip, "book.csv.gz", func(r io.Reader) (io.Reader, error) { return gzip.NewReader(r) }},
		{output.CompressionZstd, "book.csv.zst", func(r io.Reader) (io.Reader, error) { return zstd.NewReader(r) }},
	}

	for _, tt := range tests {
		opts := DefaultOptions()
		opts.Compression = tt.compression
		result, err := Convert(path, opts)
		require.NoError(t, err)
		assert.Equal(t, tt.suffix, filepath.Base(result.Destination))

		r, err := tt.open(bytes.NewReader([]byte(readFile(t, result.Destination))))
		require.NoError(t, err)
		plain, err := io.ReadAll(r)
		require.NoError(t, err)
		assert.Equal(t, "1,\"hi,there\"\n,true\n", string(plain))
	}
}

func TestConvertArrow(t *testing.T) {
	path := writeWorkbook(t, "book.xlsx")

	opts := DefaultOptions()
	opts.Arrow = true
	result, err := Convert(path, opts)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(filepath.Dir(path), "book.arrow"), result.ArrowPath)
	assert.Nil(t, result.Profile)

	f, err := os.Open(result.ArrowPath)
	require.NoError(t, err)
	defer f.Close()

	r, err := ipc.NewFileReader(f, ipc.WithAllocator(memory.NewGoAllocator()))
	require.NoError(t, err)
	defer r.Close()

	schema := r.Schema()
	require.Equal(t, 2, schema.NumFields())
	assert.Equal(t, "A", schema.Field(0).Name)
	assert.Equal(t, arrow.INT64, schema.Field(0).Type.ID())
	assert.Equal(t, arrow.STRING, schema.Field(1).Type.ID())

	rec, err := r.Record(0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), rec.NumRows())
}

func TestConvertErrorKinds(t *testing.T) {
	dir := t.TempDir()
	book := writeWorkbook(t, "book.xlsx")

	garbage := filepath.Join(dir, "garbage.xlsx")
	require.NoError(t, os.WriteFile(garbage, []byte("not a workbook"), 0644))

	streamingProfile := DefaultOptions()
	streamingProfile.Mode = ModeStreaming
	streamingProfile.Profile = true

	badDelimiter := DefaultOptions()
	badDelimiter.Delimiter = '\t'

	badMode := DefaultOptions()
	badMode.Mode = "lazy"

	missingSheet := DefaultOptions()
	missingSheet.Sheet = "7"

	tests := []struct {
		name string
		path string
		opts Options
		kind error
	}{
		{"empty path", "", DefaultOptions(), ErrInvalidArgument},
		{"wrong extension", filepath.Join(dir, "book.ods"), DefaultOptions(), ErrInvalidArgument},
		{"no extension", filepath.Join(dir, "book"), DefaultOptions(), ErrInvalidArgument},
		{"bad delimiter", book, badDelimiter, ErrInvalidArgument},
		{"bad mode", book, badMode, ErrInvalidArgument},
		{"profile while streaming", book, streamingProfile, ErrInvalidArgument},
		{"missing file", filepath.Join(dir, "missing.xlsx"), DefaultOptions(), ErrIO},
		{"garbage", garbage, DefaultOptions(), ErrFormat},
		{"missing sheet", book, missingSheet, ErrSheetNotFound},
	}

	kinds := []error{ErrInvalidArgument, ErrIO, ErrFormat, ErrSheetNotFound}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Convert(tt.path, tt.opts)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)

			var ce *ConversionError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, tt.kind, ce.Kind)
			for _, k := range kinds {
				if k != tt.kind {
					assert.NotErrorIs(t, err, k)
				}
			}
		})
	}
}

func TestConvertInvalidArgumentCreatesNoFile(t *testing.T) {
	path := writeWorkbook(t, "book.xlsx")
	opts := DefaultOptions()
	opts.Delimiter = '|'

	_, err := Convert(path, opts)
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, statErr := os.Stat(Destination(path, output.CompressionNone))
	assert.True(t, os.IsNotExist(statErr))
}

func TestConvertLogsSummary(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	opts := DefaultOptions()
	opts.Logger = zap.New(core)

	_, err := Convert(writeWorkbook(t, "book.xlsx"), opts)
	require.NoError(t, err)

	entries := logs.FilterMessage("conversion complete").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(2), entries[0].ContextMap()["lines"])
}

func TestConversionErrorMessage(t *testing.T) {
	err := NewConversionError(ErrFormat, "book.xlsx", errors.New("bad zip"))
	assert.Equal(t, "format error: book.xlsx: bad zip", err.Error())

	err = NewConversionError(ErrInvalidArgument, "", errors.New("no input path given"))
	assert.Equal(t, "invalid argument: no input path given", err.Error())
}
