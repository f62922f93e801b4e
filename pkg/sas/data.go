// Copyright (C) 2022-2025, Jordan Amos. All rights reserved.
// See the file LICENSE for licensing terms.

package sas

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"

	"github.com/jordanamos/sas-cli/pkg/constants"
	"github.com/jordanamos/sas-cli/pkg/dataset"
)

// SAS names: letter or underscore, then letters, digits, underscores,
// up to 32 characters. Checked before names are spliced into code.
var sasNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,31}$`)

// ValidateDatasetRef checks a LIBREF.MEMBER reference and returns its
// upcased parts
func ValidateDatasetRef(ref string) (libref, member string, err error) {
	parts := strings.Split(ref, ".")
	if len(parts) != 2 || !sasNameRe.MatchString(parts[0]) || !sasNameRe.MatchString(parts[1]) {
		return "", "", fmt.Errorf("'%s' is not a valid LIBREF.DATASET reference", ref)
	}
	return strings.ToUpper(parts[0]), strings.ToUpper(parts[1]), nil
}

// ValidateLibref checks a libref and returns it upcased
func ValidateLibref(libref string) (string, error) {
	if !sasNameRe.MatchString(libref) {
		return "", fmt.Errorf("'%s' is not a valid libref", libref)
	}
	return strings.ToUpper(libref), nil
}

// tempCSVPath builds a scratch file path inside the session WORK
// directory. WORK lives wherever SAS runs, so this is a server-side
// path in ssh mode.
func (s *Session) tempCSVPath() (string, error) {
	tok, err := newToken()
	if err != nil {
		return "", err
	}
	return path.Join(s.WorkPath(), constants.CSVTempFilePrefix+strings.ToLower(tok)+".csv"), nil
}

// exportToCSV materializes a query into WORK and exports it as CSV on
// the session side, returning the server-side CSV path
func (s *Session) exportToCSV(ctx context.Context, query string) (string, error) {
	csvPath, err := s.tempCSVPath()
	if err != nil {
		return "", err
	}
	code := fmt.Sprintf(`proc sql;
create table work._sascli_out as %s;
quit;
proc export data=work._sascli_out outfile="%s" dbms=csv replace;
run;
proc datasets library=work nolist nowarn;
delete _sascli_out;
quit;
`, query, csvPath)

	res, err := s.Submit(ctx, code)
	if err != nil {
		return "", err
	}
	if res.Failed() {
		return "", queryError(res)
	}
	return csvPath, nil
}

// Query runs a SQL query against the session and returns the result
// as a dataset, using the CSV round-trip through WORK
func (s *Session) Query(ctx context.Context, query string) (*dataset.Dataset, error) {
	csvPath, err := s.exportToCSV(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = s.drv.RemoveFile(ctx, csvPath) }()

	var buf bytes.Buffer
	if _, err := s.Download(ctx, csvPath, &buf, nil); err != nil {
		return nil, fmt.Errorf("failed to fetch query result: %w", err)
	}
	return dataset.FromCSV(&buf)
}

// ListLibraries returns the librefs assigned in the session
func (s *Session) ListLibraries(ctx context.Context) (*dataset.Dataset, error) {
	return s.Query(ctx,
		`select distinct libname, engine, path, readonly from dictionary.libnames order by libname`)
}

// ListTables returns the datasets of a library
func (s *Session) ListTables(ctx context.Context, libref string) (*dataset.Dataset, error) {
	libref, err := ValidateLibref(libref)
	if err != nil {
		return nil, err
	}
	return s.Query(ctx, fmt.Sprintf(
		`select memname, nobs, nvar, crdate, modate from dictionary.tables where libname="%s" and memtype="DATA" order by memname`,
		libref))
}

// Describe returns the column metadata of a dataset
func (s *Session) Describe(ctx context.Context, ref string) (*dataset.Dataset, error) {
	libref, member, err := ValidateDatasetRef(ref)
	if err != nil {
		return nil, err
	}
	return s.Query(ctx, fmt.Sprintf(
		`select name, type, length, format, informat, label from dictionary.columns where libname="%s" and memname="%s" order by npos`,
		libref, member))
}

// Head returns the first n rows of a dataset
func (s *Session) Head(ctx context.Context, ref string, n int) (*dataset.Dataset, error) {
	libref, member, err := ValidateDatasetRef(ref)
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		n = constants.DefaultHeadRows
	}
	if n > constants.MaxPreviewRows {
		n = constants.MaxPreviewRows
	}
	return s.Query(ctx, fmt.Sprintf(`select * from %s.%s(obs=%d)`, libref, member, n))
}

// Export writes a whole dataset as CSV into dst, reporting byte
// progress when progress is non-nil
func (s *Session) Export(ctx context.Context, ref string, dst io.Writer, progress func(total int64) io.Writer) (int64, error) {
	libref, member, err := ValidateDatasetRef(ref)
	if err != nil {
		return 0, err
	}
	csvPath, err := s.exportToCSV(ctx, fmt.Sprintf(`select * from %s.%s`, libref, member))
	if err != nil {
		return 0, err
	}
	defer func() { _ = s.drv.RemoveFile(ctx, csvPath) }()

	var progressWriter io.Writer
	if progress != nil {
		size, err := s.RemoteFileSize(ctx, csvPath)
		if err != nil {
			size = -1
		}
		progressWriter = progress(size)
	}
	return s.Download(ctx, csvPath, dst, progressWriter)
}

// queryError condenses a failed data step into a single error carrying
// the ERROR lines of the log
func queryError(res *Result) error {
	lines := ErrorLines(res.Log)
	if len(lines) == 0 {
		return fmt.Errorf("SAS reported %d error(s)", res.Errors)
	}
	return fmt.Errorf("SAS reported %d error(s): %s", res.Errors, strings.Join(lines, "; "))
}
