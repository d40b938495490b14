package pipeline

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AnyUserName/imgpress/internal/encoder"
	"github.com/AnyUserName/imgpress/internal/format"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// fakeCodec records calls and returns canned results.
type fakeCodec struct {
	img       image.Image
	decodeErr error
	out       []byte
	encodeErr error

	decodeCalls int
	encodeCalls int
	gotSource   format.Format
	gotFormat   format.Format
	gotParams   encoder.Params
}

func (c *fakeCodec) Decode(r io.Reader, f format.Format) (image.Image, string, error) {
	c.decodeCalls++
	c.gotSource = f
	if c.decodeErr != nil {
		return nil, "", c.decodeErr
	}
	if c.img == nil {
		return image.NewNRGBA(image.Rect(0, 0, 4, 3)), "fake", nil
	}
	return c.img, "fake", nil
}

func (c *fakeCodec) Encode(img image.Image, f format.Format, p encoder.Params) ([]byte, error) {
	c.encodeCalls++
	c.gotFormat = f
	c.gotParams = p
	if c.encodeErr != nil {
		return nil, c.encodeErr
	}
	return c.out, nil
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func assertNotExist(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("%s should not exist (stat err: %v)", path, err)
	}
}

func assertNoTempFiles(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("leftover temp file %s", e.Name())
		}
	}
}

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / w),
				G: uint8(y * 255 / h),
				B: 128,
				A: 255,
			})
		}
	}
	return img
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	writeFile(t, path, buf.Bytes())
}

func TestRun_InvalidInputExtension(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "cat.tiff")
	out := filepath.Join(dir, "cat.png")
	writeFile(t, in, []byte("II*\x00"))

	codec := &fakeCodec{out: []byte("x")}
	_, err := New(Config{Input: in, Output: out, Codec: codec}).Run()
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("got %v, want ErrInvalidInput", err)
	}
	if !strings.Contains(err.Error(), "invalid input format") || !strings.Contains(err.Error(), ".tiff") {
		t.Errorf("message: %q", err.Error())
	}
	if codec.decodeCalls != 0 {
		t.Error("decode ran for an invalid input")
	}
	assertNotExist(t, out)
}

func TestRun_InvalidOutputExtension(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "cat.png")
	out := filepath.Join(dir, "cat.tiff")
	writeFile(t, in, []byte("png"))
	writeFile(t, out, []byte("keep me"))

	codec := &fakeCodec{out: []byte("x")}
	_, err := New(Config{Input: in, Output: out, Codec: codec}).Run()
	if !errors.Is(err, ErrInvalidOutput) {
		t.Fatalf("got %v, want ErrInvalidOutput", err)
	}
	if codec.decodeCalls != 0 {
		t.Error("decode ran for an invalid output")
	}
	if got := readFile(t, out); got != "keep me" {
		t.Errorf("output modified: %q", got)
	}
}

func TestRun_MissingInput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "missing.png")
	out := filepath.Join(dir, "out.jpg")

	_, err := New(Config{Input: in, Output: out, Codec: &fakeCodec{}}).Run()
	if !errors.Is(err, ErrDecode) {
		t.Fatalf("got %v, want ErrDecode", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("underlying error not wrapped: %v", err)
	}
	if !strings.Contains(err.Error(), in) {
		t.Errorf("message lacks filename: %q", err.Error())
	}
	assertNotExist(t, out)
}

func TestRun_DecodeFailure(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "broken.png")
	out := filepath.Join(dir, "out.jpg")
	writeFile(t, in, []byte("garbage"))

	cause := errors.New("bad header")
	codec := &fakeCodec{decodeErr: cause}
	_, err := New(Config{Input: in, Output: out, Codec: codec}).Run()
	if !errors.Is(err, ErrDecode) || !errors.Is(err, cause) {
		t.Fatalf("got %v, want ErrDecode wrapping cause", err)
	}
	if codec.encodeCalls != 0 {
		t.Error("encode ran after decode failure")
	}
	assertNotExist(t, out)
}

func TestRun_EncodeFailureKeepsExistingOutput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "cat.png")
	out := filepath.Join(dir, "cat.gif")
	writeFile(t, in, []byte("png"))
	writeFile(t, out, []byte("previous"))

	cause := errors.New("unsupported colour type")
	_, err := New(Config{Input: in, Output: out, Codec: &fakeCodec{encodeErr: cause}}).Run()
	if !errors.Is(err, ErrEncode) || !errors.Is(err, cause) {
		t.Fatalf("got %v, want ErrEncode wrapping cause", err)
	}
	if !strings.Contains(err.Error(), "gif") {
		t.Errorf("message lacks target format: %q", err.Error())
	}
	if got := readFile(t, out); got != "previous" {
		t.Errorf("output modified: %q", got)
	}
	assertNoTempFiles(t, dir)
}

func TestRun_EmptyEncodeIsAnError(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "cat.png")
	out := filepath.Join(dir, "cat.bmp")
	writeFile(t, in, []byte("png"))

	_, err := New(Config{Input: in, Output: out, Codec: &fakeCodec{}}).Run()
	if !errors.Is(err, ErrEncode) {
		t.Fatalf("got %v, want ErrEncode", err)
	}
	if !strings.Contains(err.Error(), "not supported") {
		t.Errorf("message: %q", err.Error())
	}
	assertNotExist(t, out)
}

func TestRun_WriteFailure(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "cat.png")
	out := filepath.Join(dir, "no", "such", "dir", "cat.jpg")
	writeFile(t, in, []byte("png"))

	_, err := New(Config{Input: in, Output: out, Codec: &fakeCodec{out: []byte("jpeg")}}).Run()
	if !errors.Is(err, ErrWrite) {
		t.Fatalf("got %v, want ErrWrite", err)
	}
	if !strings.Contains(err.Error(), "could not write to "+out) {
		t.Errorf("message: %q", err.Error())
	}
}

func TestRun_DispatchAndClamp(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "cat.PNG")
	writeFile(t, in, []byte("png"))

	cases := []struct {
		out    string
		params encoder.Params
		want   format.Format
		wantP  encoder.Params
	}{
		{"a.JPEG", encoder.Params{Quality: 0, Speed: 0}, format.JPEG, encoder.Params{Quality: 1, Speed: 1}},
		{"a.jpg", encoder.Params{Quality: 200, Speed: 255}, format.JPEG, encoder.Params{Quality: 100, Speed: 30}},
		{"a.gif", encoder.Params{Quality: 80, Speed: -3}, format.GIF, encoder.Params{Quality: 80, Speed: 1}},
		{"a.bmp", encoder.Params{Quality: 50, Speed: 12}, format.BMP, encoder.Params{Quality: 50, Speed: 12}},
		{"a.Png", encoder.Params{Quality: 80, Speed: 1}, format.PNG, encoder.Params{Quality: 80, Speed: 1}},
	}
	for _, c := range cases {
		codec := &fakeCodec{out: []byte("encoded")}
		out := filepath.Join(dir, c.out)
		res, err := New(Config{Input: in, Output: out, Params: c.params, Codec: codec}).Run()
		if err != nil {
			t.Fatalf("%s: %v", c.out, err)
		}
		if codec.gotSource != format.PNG {
			t.Errorf("%s: decoded as %v, want png from the input extension", c.out, codec.gotSource)
		}
		if codec.gotFormat != c.want {
			t.Errorf("%s: format %v, want %v", c.out, codec.gotFormat, c.want)
		}
		if codec.gotParams != c.wantP || res.Params != c.wantP {
			t.Errorf("%s: params %+v, want %+v", c.out, codec.gotParams, c.wantP)
		}
		if got := readFile(t, out); got != "encoded" {
			t.Errorf("%s: content %q", c.out, got)
		}
	}
}

func TestRun_InPlace(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "cat.jpg")
	writeFile(t, in, []byte("original jpeg bytes"))

	res, err := New(Config{Input: in, Codec: &fakeCodec{out: []byte("smaller")}}).Run()
	if err != nil {
		t.Fatal(err)
	}
	if res.Output != in {
		t.Errorf("output: got %q, want %q", res.Output, in)
	}
	if got := readFile(t, in); got != "smaller" {
		t.Errorf("content: %q", got)
	}
	assertNoTempFiles(t, dir)
}

func TestRun_SkipUnchanged(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "cat.png")
	writeFile(t, in, []byte("same"))
	before, _ := os.Stat(in)

	res, err := New(Config{Input: in, Codec: &fakeCodec{out: []byte("same")}}).Run()
	if err != nil {
		t.Fatal(err)
	}
	if res.Skipped != SkipUnchanged {
		t.Errorf("skipped: got %q, want %q", res.Skipped, SkipUnchanged)
	}
	after, _ := os.Stat(in)
	if !after.ModTime().Equal(before.ModTime()) {
		t.Error("identical output was rewritten")
	}
}

func TestRun_NoRegressSize(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "cat.png")
	writeFile(t, in, []byte("tiny"))

	res, err := New(Config{
		Input:         in,
		NoRegressSize: true,
		Codec:         &fakeCodec{out: []byte("much larger output")},
	}).Run()
	if err != nil {
		t.Fatal(err)
	}
	if res.Skipped != SkipLarger {
		t.Errorf("skipped: got %q, want %q", res.Skipped, SkipLarger)
	}
	if got := readFile(t, in); got != "tiny" {
		t.Errorf("input rewritten: %q", got)
	}

	// Without the flag the larger output is written.
	if _, err := New(Config{Input: in, Codec: &fakeCodec{out: []byte("much larger output")}}).Run(); err != nil {
		t.Fatal(err)
	}
	if got := readFile(t, in); got != "much larger output" {
		t.Errorf("content: %q", got)
	}
}

func TestRun_VerboseLog(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "cat.png")
	writeFile(t, in, []byte("png"))

	var log bytes.Buffer
	_, err := New(Config{
		Input:   in,
		Output:  filepath.Join(dir, "cat.bmp"),
		Verbose: true,
		Log:     &log,
		Codec:   &fakeCodec{out: []byte("bmp")},
	}).Run()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(log.String(), "[imgpress] decoded") || !strings.Contains(log.String(), "[imgpress] wrote") {
		t.Errorf("log: %q", log.String())
	}

	log.Reset()
	_, err = New(Config{Input: in, Output: filepath.Join(dir, "quiet.bmp"), Log: &log, Codec: &fakeCodec{out: []byte("bmp")}}).Run()
	if err != nil {
		t.Fatal(err)
	}
	if log.Len() != 0 {
		t.Errorf("non-verbose run logged: %q", log.String())
	}
}

func TestRun_PNGToJPEG(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "cat.png")
	out := filepath.Join(dir, "cat.jpg")
	writePNG(t, in, gradient(64, 48))

	res, err := New(Config{Input: in, Output: out, Params: encoder.Params{Quality: 90, Speed: 1}}).Run()
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.SourceFormat != "png" || res.Target != format.JPEG {
		t.Errorf("formats: %s -> %v", res.SourceFormat, res.Target)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := jpeg.Decode(f)
	if err != nil {
		t.Fatalf("output is not a JPEG: %v", err)
	}
	if img.Bounds().Dx() != 64 || img.Bounds().Dy() != 48 {
		t.Errorf("size: got %v", img.Bounds().Size())
	}
}

func TestRun_LosslessChain(t *testing.T) {
	dir := t.TempDir()
	src := gradient(31, 17)
	pngPath := filepath.Join(dir, "a.png")
	bmpPath := filepath.Join(dir, "a.bmp")
	backPath := filepath.Join(dir, "b.png")
	writePNG(t, pngPath, src)

	if _, err := New(Config{Input: pngPath, Output: bmpPath}).Run(); err != nil {
		t.Fatalf("png -> bmp: %v", err)
	}
	if _, err := New(Config{Input: bmpPath, Output: backPath}).Run(); err != nil {
		t.Fatalf("bmp -> png: %v", err)
	}

	bf, err := os.Open(bmpPath)
	if err != nil {
		t.Fatal(err)
	}
	defer bf.Close()
	if _, err := bmp.DecodeConfig(bf); err != nil {
		t.Fatalf("intermediate is not a BMP: %v", err)
	}

	f, err := os.Open(backPath)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	got, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 17; y++ {
		for x := 0; x < 31; x++ {
			r1, g1, b1, a1 := src.At(x, y).RGBA()
			r2, g2, b2, a2 := got.At(x, y).RGBA()
			if r1 != r2 || g1 != g2 || b1 != b2 || a1 != a2 {
				t.Fatalf("pixel (%d,%d) changed: %v -> %v", x, y, src.At(x, y), got.At(x, y))
			}
		}
	}
}

func TestRun_GIFOutput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "cat.png")
	out := filepath.Join(dir, "cat.gif")
	writePNG(t, in, gradient(40, 30))

	res, err := New(Config{Input: in, Output: out, Params: encoder.Params{Quality: 80, Speed: 30}}).Run()
	if err != nil {
		t.Fatal(err)
	}
	if res.Width != 40 || res.Height != 30 {
		t.Errorf("size: %dx%d", res.Width, res.Height)
	}

	// Re-encode the GIF back to PNG through the same pipeline.
	back := filepath.Join(dir, "back.png")
	res, err = New(Config{Input: out, Output: back}).Run()
	if err != nil {
		t.Fatal(err)
	}
	if res.SourceFormat != "gif" {
		t.Errorf("source format: %q", res.SourceFormat)
	}
}

func TestRun_NotAnImage(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "cat.png")
	out := filepath.Join(dir, "cat.jpg")
	writeFile(t, in, []byte("this is plain text"))

	_, err := New(Config{Input: in, Output: out}).Run()
	if !errors.Is(err, ErrDecode) {
		t.Fatalf("got %v, want ErrDecode", err)
	}
	var fe png.FormatError
	if !errors.As(err, &fe) {
		t.Errorf("underlying png.FormatError not wrapped: %v", err)
	}
	assertNotExist(t, out)
}

func TestRun_ContentMustMatchExtension(t *testing.T) {
	var tiffData, jpegData, pngData bytes.Buffer
	if err := tiff.Encode(&tiffData, gradient(16, 8), nil); err != nil {
		t.Fatal(err)
	}
	if err := jpeg.Encode(&jpegData, gradient(16, 8), nil); err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(&pngData, gradient(16, 8)); err != nil {
		t.Fatal(err)
	}

	cases := map[string][]byte{
		"tiff-as-png.png": tiffData.Bytes(),
		"jpeg-as-png.png": jpegData.Bytes(),
		"png-as-gif.gif":  pngData.Bytes(),
	}
	for name, data := range cases {
		dir := t.TempDir()
		in := filepath.Join(dir, name)
		out := filepath.Join(dir, "out.jpg")
		writeFile(t, in, data)

		res, err := New(Config{Input: in, Output: out}).Run()
		if !errors.Is(err, ErrDecode) {
			t.Errorf("%s: got result %+v, err %v; want ErrDecode", name, res, err)
		}
		assertNotExist(t, out)
	}
}

func TestImageCodec_DecodeReportsExtensionFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, gradient(8, 4)); err != nil {
		t.Fatal(err)
	}
	img, name, err := ImageCodec{}.Decode(bytes.NewReader(buf.Bytes()), format.PNG)
	if err != nil {
		t.Fatal(err)
	}
	if name != "png" || img.Bounds().Dx() != 8 {
		t.Errorf("got %q %v", name, img.Bounds())
	}

	if _, _, err := (ImageCodec{}).Decode(bytes.NewReader(buf.Bytes()), format.Unknown); err == nil {
		t.Error("expected error for unknown format")
	}
}
