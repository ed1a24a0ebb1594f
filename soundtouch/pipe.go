// SPDX-License-Identifier: EPL-2.0

package soundtouch

// pipe is the plumbing shared by pipeline stages. A stage reads from input
// and appends to output; both are owned by whoever assigned them.
type pipe struct {
	input  *SampleBuffer
	output *SampleBuffer
}

// Input returns the buffer the stage consumes from.
func (p *pipe) Input() *SampleBuffer { return p.input }

// Output returns the buffer the stage produces into.
func (p *pipe) Output() *SampleBuffer { return p.output }

// SetInput assigns the buffer the stage consumes from.
func (p *pipe) SetInput(b *SampleBuffer) { p.input = b }

// SetOutput assigns the buffer the stage produces into.
func (p *pipe) SetOutput(b *SampleBuffer) { p.output = b }

func (p *pipe) clearBuffers() {
	if p.input != nil {
		p.input.Clear()
	}
	if p.output != nil {
		p.output.Clear()
	}
}

// stage is what the coordinator drives.
type stage interface {
	Input() *SampleBuffer
	Output() *SampleBuffer
	SetInput(*SampleBuffer)
	SetOutput(*SampleBuffer)
	Process()
	Flush()
	Clear()
}
