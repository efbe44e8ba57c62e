package dataset

import (
	"fmt"
	"io"
)

// Describe writes a human-readable summary of the session to w.
func (d *Dataset) Describe(w io.Writer) {
	fmt.Fprintf(w, "sample rate      %g Hz\n", d.sampleRate)
	fmt.Fprintf(w, "duration         %.2f s\n", d.Duration())
	fmt.Fprintf(w, "spikes           %d\n", d.NumSpikes())
	fmt.Fprintf(w, "templates        %d (%d samples)\n", d.NumTemplates(), d.templateLength)
	fmt.Fprintf(w, "channels         %d\n", d.NumChannels())
	fmt.Fprintf(w, "features         %v\n", d.features != nil)
	fmt.Fprintf(w, "template feats   %v\n", d.templateFeatures != nil)
	fmt.Fprintf(w, "raw recording    %v\n", d.raw != nil)
}
