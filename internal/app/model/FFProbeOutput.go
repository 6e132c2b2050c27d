package model

// FFProbeOutput mirrors the subset of `ffprobe -show_streams` JSON output
// needed to pick the audio stream and its codec.
type FFProbeOutput struct {
	Streams []struct {
		CodecType  string `json:"codec_type"`
		CodecName  string `json:"codec_name"`
		SampleRate int    `json:"sample_rate,string"`
	} `json:"streams"`
}
