package model

// Template is a learned multichannel waveform kernel. The waveform carries
// one column per entry of ChannelIDs (the template's "best channels"), not
// one per recording channel.
type Template struct {
	ID TemplateID

	// Waveform is the kernel, shaped length x len(ChannelIDs).
	Waveform *Matrix

	// ChannelIDs is the channel subset the waveform columns refer to.
	ChannelIDs []ChannelID

	// BestChannel is the peak channel of the template.
	BestChannel ChannelID
}

// Length returns the number of samples in the template waveform.
func (t *Template) Length() int {
	if t.Waveform == nil {
		return 0
	}
	return t.Waveform.Rows()
}
