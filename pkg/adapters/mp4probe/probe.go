// Package mp4probe reads video stream metadata (codec, size, frame count and
// frame rate) from MP4 containers without decoding any frames.
package mp4probe

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Eyevinn/mp4ff/mp4"

	"github.com/user/framemark/pkg/ports"
)

// Codec names reported in ports.VideoInfo.
const (
	CodecH264    = "h264"
	CodecHEVC    = "hevc"
	CodecAV1     = "av1"
	CodecVP9     = "vp9"
	CodecUnknown = "unknown"
)

// ErrNoVideoTrack is returned when the container has no video track.
var ErrNoVideoTrack = errors.New("no video track found")

// ProbeFile reads metadata from the MP4 file at path.
func ProbeFile(path string) (ports.VideoInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return ports.VideoInfo{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return Probe(f)
}

// Probe reads metadata from an MP4 stream. Sample data in mdat boxes is
// skipped, not read. The reader is rewound on success.
func Probe(reader io.ReadSeeker) (ports.VideoInfo, error) {
	mp4File, err := mp4.DecodeFile(reader, mp4.WithDecodeMode(mp4.DecModeLazyMdat))
	if err != nil {
		return ports.VideoInfo{}, fmt.Errorf("decode mp4: %w", err)
	}
	if _, err := reader.Seek(0, io.SeekStart); err != nil {
		return ports.VideoInfo{}, fmt.Errorf("seek: %w", err)
	}

	if mp4File.IsFragmented() {
		return probeFragmented(mp4File)
	}
	return probeProgressive(mp4File)
}

func probeProgressive(f *mp4.File) (ports.VideoInfo, error) {
	if f.Moov == nil {
		return ports.VideoInfo{}, ErrNoVideoTrack
	}
	trak := videoTrak(f.Moov)
	if trak == nil {
		return ports.VideoInfo{}, ErrNoVideoTrack
	}

	info := describeTrak(trak)
	stbl := trak.Mdia.Minf.Stbl
	if stbl.Stsz != nil {
		info.FrameCount = int(stbl.Stsz.SampleNumber)
	}
	if mdhd := trak.Mdia.Mdhd; mdhd != nil {
		info.FrameRate = frameRate(uint64(info.FrameCount), mdhd.Timescale, mdhd.Duration)
	}
	return info, nil
}

func probeFragmented(f *mp4.File) (ports.VideoInfo, error) {
	if f.Init == nil || f.Init.Moov == nil {
		return ports.VideoInfo{}, ErrNoVideoTrack
	}
	trak := videoTrak(f.Init.Moov)
	if trak == nil {
		return ports.VideoInfo{}, ErrNoVideoTrack
	}
	info := describeTrak(trak)
	trackID := trak.Tkhd.TrackID

	var trex *mp4.TrexBox
	if mvex := f.Init.Moov.Mvex; mvex != nil {
		for _, t := range mvex.Trexs {
			if t.TrackID == trackID {
				trex = t
				break
			}
		}
	}

	var count, duration uint64
	for _, seg := range f.Segments {
		for _, frag := range seg.Fragments {
			if frag.Moof == nil {
				continue
			}
			for _, traf := range frag.Moof.Trafs {
				if traf.Tfhd == nil || traf.Tfhd.TrackID != trackID {
					continue
				}
				defaultDur := defaultSampleDuration(traf.Tfhd, trex)
				for _, trun := range traf.Truns {
					count += uint64(trun.SampleCount())
					duration += trun.Duration(defaultDur)
				}
			}
		}
	}

	info.FrameCount = int(count)
	if mdhd := trak.Mdia.Mdhd; mdhd != nil {
		info.FrameRate = frameRate(count, mdhd.Timescale, duration)
	}
	return info, nil
}

// defaultSampleDuration resolves the duration used by trun entries that carry
// none of their own: tfhd first, then trex.
func defaultSampleDuration(tfhd *mp4.TfhdBox, trex *mp4.TrexBox) uint32 {
	if tfhd.HasDefaultSampleDuration() {
		return tfhd.DefaultSampleDuration
	}
	if trex != nil {
		return trex.DefaultSampleDuration
	}
	return 0
}

// videoTrak returns the first track with a "vide" handler and a sample table.
func videoTrak(moov *mp4.MoovBox) *mp4.TrakBox {
	for _, trak := range moov.Traks {
		if trak.Mdia == nil || trak.Mdia.Hdlr == nil || trak.Mdia.Hdlr.HandlerType != "vide" {
			continue
		}
		if trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil {
			continue
		}
		return trak
	}
	return nil
}

func describeTrak(trak *mp4.TrakBox) ports.VideoInfo {
	info := ports.VideoInfo{Codec: CodecUnknown}
	if trak.Tkhd != nil {
		info.Width = int(trak.Tkhd.Width >> 16)
		info.Height = int(trak.Tkhd.Height >> 16)
	}

	stsd := trak.Mdia.Minf.Stbl.Stsd
	if stsd == nil {
		return info
	}
	for _, child := range stsd.Children {
		info.Codec = codecFor(child.Type())
		if vse, ok := child.(*mp4.VisualSampleEntryBox); ok {
			info.Width = int(vse.Width)
			info.Height = int(vse.Height)
		}
		if info.Codec != CodecUnknown {
			break
		}
	}
	return info
}

func codecFor(boxType string) string {
	switch boxType {
	case "avc1", "avc3":
		return CodecH264
	case "hvc1", "hev1":
		return CodecHEVC
	case "av01":
		return CodecAV1
	case "vp09":
		return CodecVP9
	default:
		return CodecUnknown
	}
}

// frameRate derives frames per second from a sample count and the total
// sample duration in timescale units. Zero inputs give 0.
func frameRate(count uint64, timescale uint32, duration uint64) float64 {
	if count == 0 || timescale == 0 || duration == 0 {
		return 0
	}
	return float64(count) * float64(timescale) / float64(duration)
}
