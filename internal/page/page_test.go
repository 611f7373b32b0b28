package page

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_SettersKeepOtherFields(t *testing.T) {
	d := NewDocument()

	_, ok := d.Element(IDResponseMsg)
	assert.False(t, ok)

	d.SetValue(IDTempHigh, "30")
	d.SetText(IDTempHigh, "label")
	el, ok := d.Element(IDTempHigh)
	require.True(t, ok)
	assert.Equal(t, Element{Text: "label", Value: "30"}, el)

	d.SetMessage(IDResponseMsg, "Settings updated successfully!", ColorGreen)
	d.SetText(IDResponseMsg, "again")
	el, _ = d.Element(IDResponseMsg)
	assert.Equal(t, "again", el.Text)
	assert.Equal(t, ColorGreen, el.Color)
	assert.Equal(t, "30", d.Value(IDTempHigh))
	assert.Equal(t, "", d.Text(IDMode))
}

func TestDocument_AlertsAreCopied(t *testing.T) {
	d := NewDocument()
	d.Alert("one")
	got := d.Alerts()
	got[0] = "mutated"
	assert.Equal(t, []string{"one"}, d.Alerts())
}

func TestDocument_ConcurrentWrites(t *testing.T) {
	d := NewDocument()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			d.SetText(fmt.Sprintf("el-%d", i), "x")
			d.Alert("a")
		}(i)
	}
	wg.Wait()
	assert.Len(t, d.Alerts(), 50)
	assert.Equal(t, "x", d.Text("el-49"))
}
