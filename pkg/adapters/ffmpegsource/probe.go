package ffmpegsource

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"

	"github.com/user/framemark/pkg/ports"
)

// ffprobeOutput is the subset of `ffprobe -of json` output used here.
type ffprobeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
	Streams []struct {
		CodecType    string `json:"codec_type"`
		CodecName    string `json:"codec_name"`
		Width        int    `json:"width"`
		Height       int    `json:"height"`
		NbFrames     string `json:"nb_frames"`
		RFrameRate   string `json:"r_frame_rate"`
		AvgFrameRate string `json:"avg_frame_rate"`
		Duration     string `json:"duration"`
	} `json:"streams"`
}

// ffprobe reads stream metadata for the first video stream of path.
func ffprobe(ctx context.Context, ffprobePath, path string) (ports.VideoInfo, error) {
	cmd := exec.CommandContext(ctx, ffprobePath,
		"-v", "quiet",
		"-show_format",
		"-show_streams",
		"-select_streams", "v:0",
		"-of", "json",
		path,
	)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return ports.VideoInfo{}, newProcessError(OpProbe, path, err, stderr.String())
	}

	info, err := parseProbeOutput(stdout.Bytes())
	if err != nil {
		return ports.VideoInfo{}, newProcessError(OpProbeParse, path, err, "")
	}
	return info, nil
}

func parseProbeOutput(data []byte) (ports.VideoInfo, error) {
	var output ffprobeOutput
	if err := json.Unmarshal(data, &output); err != nil {
		return ports.VideoInfo{}, err
	}

	for _, stream := range output.Streams {
		if stream.CodecType != "video" {
			continue
		}
		info := ports.VideoInfo{
			Codec:  stream.CodecName,
			Width:  stream.Width,
			Height: stream.Height,
		}

		info.FrameRate = parseRate(stream.AvgFrameRate)
		if info.FrameRate == 0 {
			info.FrameRate = parseRate(stream.RFrameRate)
		}

		if n, err := strconv.Atoi(stream.NbFrames); err == nil && n > 0 {
			info.FrameCount = n
		} else {
			duration := parseFloat(stream.Duration)
			if duration == 0 {
				duration = parseFloat(output.Format.Duration)
			}
			info.FrameCount = int(math.Round(duration * info.FrameRate))
		}
		return info, nil
	}

	return ports.VideoInfo{}, ErrNoVideoStream
}

// parseRate parses ffprobe rationals such as "30000/1001" or plain numbers.
// Invalid or zero-denominator rates give 0.
func parseRate(s string) float64 {
	num, den, found := strings.Cut(s, "/")
	if !found {
		return parseFloat(s)
	}
	n, err1 := strconv.ParseFloat(num, 64)
	d, err2 := strconv.ParseFloat(den, 64)
	if err1 != nil || err2 != nil || d == 0 {
		return 0
	}
	return n / d
}

func parseFloat(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func describe(info ports.VideoInfo) string {
	return fmt.Sprintf("%s %dx%d, %d frames at %.3f fps", info.Codec, info.Width, info.Height, info.FrameCount, info.FrameRate)
}
