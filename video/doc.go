// Package video provides MJPEG capture plumbing for a NanoKVM-USB
// video path.
//
// The package ends at frame delivery: a Source produces raw stream
// bytes, a Splitter cuts them into individual JPEG images on their
// SOI/EOI markers, a Pump drives the two from a goroutine into a
// latest-frame mailbox, and a Recorder persists frames to disk.
// Decoding and rendering are left to the consumer.
//
// # Zero-copy contract
//
// Splitter.Next returns frames as subslices of the splitter's internal
// buffer; a frame is valid only until the next Write. Clone copies a
// frame out for retention. The Pump honors this internally and hands
// out owned copies.
package video
