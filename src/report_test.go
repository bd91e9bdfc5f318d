package touchtone

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_WriteReport(t *testing.T) {
	var events = []Event{
		{Symbol: '1', Offset: 0, Time: 0},
		{Symbol: '#', Offset: 12000, Time: 1.5},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, events, ReportOptions{}))

	var lines = strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "  1  1    0.000 s", lines[0])
	assert.Equal(t, "  2  #    1.500 s", lines[1])
	assert.Equal(t, "Sequence: 1#", lines[2])
}

func Test_WriteReport_Timestamps(t *testing.T) {
	var events = []Event{{Symbol: '7', Offset: 12000, Time: 1.5}}

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, events, ReportOptions{
		TimestampFormat: "%H:%M:%S.%L",
		Start:           time.Date(2024, 3, 1, 12, 0, 59, 0, time.UTC),
	}))

	assert.Contains(t, buf.String(), "  1  7    1.500 s  12:01:00.500\n")
}

func Test_WriteReport_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, []Event{}, ReportOptions{}))
	assert.Equal(t, "Sequence: \n", buf.String())
}
