package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewReportCommand(t *testing.T) {
	cmd := newReportCommand()

	assert.Equal(t, "report", cmd.Use)
	assert.NotNil(t, cmd.RunE)

	pdfFlag := cmd.Flags().Lookup("pdf")
	assert.NotNil(t, pdfFlag)
	assert.Equal(t, "false", pdfFlag.DefValue)
}
