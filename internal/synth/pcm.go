package synth

import (
	"encoding/binary"
	"math"

	"github.com/gopxl/beep"
)

// maxRenderSamples 单个音效最多渲染的采样数（10 秒 @ 48kHz）
const maxRenderSamples = 480000

// RenderPCM16 把有限长度的流渲染成 16 位有符号小端立体声 PCM
// 超出 [-1, 1] 的采样被截断
func RenderPCM16(s beep.Streamer) []byte {
	if s == nil {
		return nil
	}

	buf := make([][2]float64, 512)
	out := make([]byte, 0, 4096)
	total := 0
	for total < maxRenderSamples {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			out = binary.LittleEndian.AppendUint16(out, uint16(toInt16(buf[i][0])))
			out = binary.LittleEndian.AppendUint16(out, uint16(toInt16(buf[i][1])))
		}
		total += n
		if !ok || n == 0 {
			break
		}
	}
	return out
}

func toInt16(v float64) int16 {
	v = math.Max(-1, math.Min(1, v))
	return int16(v * math.MaxInt16)
}
