package pipeline

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/AnyUserName/imgpress/internal/encoder"
	"github.com/AnyUserName/imgpress/internal/format"
	"github.com/AnyUserName/imgpress/internal/hasher"
)

// SkipReason explains why a successful run left the output untouched.
type SkipReason string

const (
	NotSkipped    SkipReason = ""
	SkipUnchanged SkipReason = "unchanged" // encoded bytes equal the existing output
	SkipLarger    SkipReason = "larger"    // encoded bytes not smaller than the input
)

// Config holds all parameters for a single conversion.
type Config struct {
	Input  string
	Output string // empty means rewrite Input in place
	Params encoder.Params

	// NoRegressSize keeps the existing output when the re-encoded data is
	// not smaller than the input file.
	NoRegressSize bool

	Verbose bool
	Log     io.Writer // verbose sink, os.Stderr when nil
	Codec   Codec     // ImageCodec when nil
}

// Result describes a completed run.
type Result struct {
	Input        string
	Output       string
	SourceFormat string // as reported by the decoder, always the input extension's format
	Target       format.Format
	Params       encoder.Params // after clamping
	Width        int
	Height       int
	InputBytes   int64
	OutputBytes  int64
	Digest       hasher.Digest // of the encoded bytes
	Skipped      SkipReason
}

// Pipeline converts one image file: validate, decode, encode, write.
type Pipeline struct {
	cfg   Config
	codec Codec
}

// New creates a configured pipeline.
func New(cfg Config) *Pipeline {
	if cfg.Output == "" {
		cfg.Output = cfg.Input
	}
	if cfg.Log == nil {
		cfg.Log = os.Stderr
	}
	codec := cfg.Codec
	if codec == nil {
		codec = ImageCodec{}
	}
	return &Pipeline{cfg: cfg, codec: codec}
}

// Run executes the pipeline. On any error the output path is left exactly
// as it was before the call.
func (p *Pipeline) Run() (*Result, error) {
	in, out := p.cfg.Input, p.cfg.Output

	// Step 1: Validate both extensions before touching the filesystem.
	source, err := format.Parse(in)
	if err != nil {
		return nil, fmt.Errorf("%w %q", ErrInvalidInput, format.Extension(in))
	}
	target, err := format.Parse(out)
	if err != nil {
		return nil, fmt.Errorf("%w %q", ErrInvalidOutput, format.Extension(out))
	}
	params := p.cfg.Params.Clamped()

	// Step 2: Decode with the decoder the input extension names.
	src, err := os.ReadFile(in)
	if err != nil {
		return nil, fmt.Errorf("%w: could not open %s: %w", ErrDecode, in, err)
	}
	img, srcFormat, err := p.codec.Decode(bytes.NewReader(src), source)
	if err != nil {
		return nil, fmt.Errorf("%w: could not open %s: %w", ErrDecode, in, err)
	}

	b := img.Bounds()
	p.logf("decoded %s: %dx%d %s, %d bytes", in, b.Dx(), b.Dy(), srcFormat, len(src))

	// Step 3: Encode into memory.
	data, err := p.codec.Encode(img, target, params)
	if err != nil {
		return nil, fmt.Errorf("%w: could not encode the input image to %s: %w", ErrEncode, target, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s format not supported", ErrEncode, target)
	}

	res := &Result{
		Input:        in,
		Output:       out,
		SourceFormat: srcFormat,
		Target:       target,
		Params:       params,
		Width:        b.Dx(),
		Height:       b.Dy(),
		InputBytes:   int64(len(src)),
		OutputBytes:  int64(len(data)),
		Digest:       hasher.Sum(data),
	}
	p.logf("encoded %s: %d bytes, quality=%d speed=%d, xxh64=%s",
		target, len(data), params.Quality, params.Speed, res.Digest.Hex(16))

	// Step 4: Write, unless it would be pointless.
	if existing, err := hasher.File(out); err == nil && existing == res.Digest {
		p.logf("skip: %s already holds identical bytes", out)
		res.Skipped = SkipUnchanged
		return res, nil
	}
	if p.cfg.NoRegressSize && res.OutputBytes >= res.InputBytes {
		p.logf("skip: %s, encoded %d >= original %d bytes", out, res.OutputBytes, res.InputBytes)
		res.Skipped = SkipLarger
		return res, nil
	}

	if err := WriteFile(out, data); err != nil {
		return nil, fmt.Errorf("%w: could not write to %s: %w", ErrWrite, out, err)
	}
	p.logf("wrote %s", out)
	return res, nil
}

func (p *Pipeline) logf(msg string, args ...any) {
	if p.cfg.Verbose {
		fmt.Fprintf(p.cfg.Log, "[imgpress] "+msg+"\n", args...)
	}
}
