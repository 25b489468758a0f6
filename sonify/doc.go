// Package sonify turns text into a mono 16-bit PCM waveform.
//
// An [Engine] looks up a preset, hands each voice the characters its
// predicate selects, tokenizes and maps them to note events, renders the
// voices concurrently and mixes them into one normalized signal:
//
//	reg, _ := preset.Builtin()
//	eng, _ := sonify.New(reg)
//	res, _ := eng.Render(ctx, html, "orchestra")
//	_ = audiofile.WriteWAV("out.wav", res.SampleRate, res.PCM)
package sonify
