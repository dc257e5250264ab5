// SPDX-License-Identifier: EPL-2.0

// Package sample loads audio files for the synth.
//
// A Bank scans a directory once, then decodes the selected file through
// format decoder, resampler and stereo mixer into two pre-allocated int16
// buffers at 48 kHz:
//
//	bank := sample.NewBank(sample.DefaultRegistry(), 0)
//	if err := bank.Init("samples"); err != nil {
//		return err
//	}
//	if err := bank.LoadFile(0); err != nil {
//		return err
//	}
//	err := s.Init(bank.Left(), bank.Right(), bank.GetSamplesPerChannel())
package sample
