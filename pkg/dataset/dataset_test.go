// Copyright (C) 2022-2025, Jordan Amos. All rights reserved.
// See the file LICENSE for licensing terms.

package dataset

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const classCSV = `Name,Sex,Age,Height
Alfred,M,14,69
Alice,F,13,56.5
Jane,F,,59.8
`

func TestFromCSV(t *testing.T) {
	require := require.New(t)

	ds, err := FromCSV(strings.NewReader(classCSV))
	require.NoError(err)
	require.Equal([]string{"Name", "Sex", "Age", "Height"}, ds.Columns)
	require.Equal(3, ds.NumRows())
	require.Equal(4, ds.NumColumns())
	require.Equal([]string{"Alfred", "M", "14", "69"}, ds.Rows[0])
}

func TestFromCSVEmptyStream(t *testing.T) {
	_, err := FromCSV(strings.NewReader(""))
	require.ErrorContains(t, err, "empty CSV stream")
}

func TestFromCSVRaggedRow(t *testing.T) {
	_, err := FromCSV(strings.NewReader("a,b\n1,2\n3\n"))
	require.ErrorContains(t, err, "expected 2")
}

func TestFromCSVHeaderOnly(t *testing.T) {
	require := require.New(t)
	ds, err := FromCSV(strings.NewReader("a,b,c\n"))
	require.NoError(err)
	require.Equal(0, ds.NumRows())
	require.Equal(3, ds.NumColumns())
}

func TestColumn(t *testing.T) {
	require := require.New(t)
	ds, err := FromCSV(strings.NewReader(classCSV))
	require.NoError(err)

	ages, err := ds.Column("age")
	require.NoError(err)
	require.Equal([]string{"14", "13", ""}, ages)

	_, err = ds.Column("weight")
	require.Error(err)
}

func TestHead(t *testing.T) {
	require := require.New(t)
	ds, err := FromCSV(strings.NewReader(classCSV))
	require.NoError(err)

	require.Equal(2, ds.Head(2).NumRows())
	require.Equal(3, ds.Head(10).NumRows())
}

func TestWriteCSVRoundTrip(t *testing.T) {
	require := require.New(t)
	ds, err := FromCSV(strings.NewReader(classCSV))
	require.NoError(err)

	var buf bytes.Buffer
	require.NoError(ds.WriteCSV(&buf))

	again, err := FromCSV(&buf)
	require.NoError(err)
	require.Equal(ds.Columns, again.Columns)
	require.Equal(ds.Rows, again.Rows)
}

func TestNumericColumn(t *testing.T) {
	require := require.New(t)
	ds, err := FromCSV(strings.NewReader("name,age,height,note\nalice,13,56.5,\nbob,.,60,\n"))
	require.NoError(err)

	require.False(ds.numericColumn(0))
	require.True(ds.numericColumn(1), "SAS missing value '.' should not break numeric detection")
	require.True(ds.numericColumn(2))
	require.False(ds.numericColumn(3), "all-missing column is not numeric")
}

func TestRender(t *testing.T) {
	require := require.New(t)
	ds, err := FromCSV(strings.NewReader(classCSV))
	require.NoError(err)

	var buf bytes.Buffer
	require.NoError(ds.Render(&buf))
	out := buf.String()
	require.Contains(out, "Alfred")
	require.Contains(out, "(3 rows)")
}
