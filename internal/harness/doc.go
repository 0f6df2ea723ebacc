// Package harness checks a goblin build against a reference image tool.
//
// A run is a single linear pass over external commands:
//
//  1. Ensure the noise fixture <NNN>.png exists (generated once per size and
//     reused afterwards).
//  2. Print the fixture's metadata with the reference tool (exit status is
//     ignored).
//  3. Convert the fixture to <NNN>.png.tga with the reference tool.
//  4. Run the binary under test on the fixture, capturing its stdout into
//     <NNN>.png.goblin.tga.
//  5. Compare both TGA files byte for byte.
//
// The first failing step ends the run. Every failure is reported as a
// *StageError naming the step, except a byte mismatch, which is reported as
// ErrMismatch alongside a populated Result.
//
// # Reference Tool
//
// The reference tool defaults to GraphicsMagick ("gm") and is invoked through
// a shell, so the conversion pipeline can stream between two invocations:
//
//	gm convert -size 128x128 xc: +noise Random PNG8:128.png
//	gm identify 128.png
//	gm convert 128.png PNG24:- | gm convert - 128.png.tga
//
// The binary under test is executed directly, without a shell.
//
// # Suites
//
// A suite file lists several sizes to run in sequence:
//
//	name: smoke
//	sizes: [1, 16, 128]
//
// Suite files are validated against an embedded CUE schema before decoding.
//
// # Usage
//
//	h := harness.New(harness.DefaultConfig(), harness.WithLogger(logger))
//	result, err := h.Run(ctx, "./png2tga", 128)
//	if errors.Is(err, harness.ErrMismatch) {
//	    log.Printf("first difference at byte %d", result.Comparison.Offset)
//	}
package harness
