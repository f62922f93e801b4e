// Copyright (C) 2022-2025, Jordan Amos. All rights reserved.
// See the file LICENSE for licensing terms.
package constants

import (
	"time"
)

const (
	DefaultPerms755    = 0o755
	WriteReadReadPerms = 0o644

	BaseDirName = ".sas-cli"
	LogDir      = "logs"
	ResultsDir  = "results"

	ProfilesFileName      = "profiles.yaml"
	DefaultConfigFileName = "cli"
	DefaultConfigFileType = "json"

	AppLogName = "sas-cli.log"

	// SAS program files
	ProgramSuffix = ".sas"
	LogSuffix     = ".log"
	ListingSuffix = ".lst"

	// Session timeouts
	SessionStartTimeout = 60 * time.Second
	SessionCloseTimeout = 15 * time.Second

	// SSH defaults
	DefaultSSHPort = 22

	// Default location of a SAS 9.4 foundation install
	DefaultSASPath = "/opt/sasinside/SASHome/SASFoundation/9.4/bin/sas_u8"

	DefaultProfileName = "default"

	// Config keys
	ConfigProfileKey = "profile"
	ConfigColorKey   = "color"
	ConfigStrictKey  = "strict"
	ConfigKeepLogKey = "keep-log"
	ConfigJobsKey    = "jobs"

	// Env bindings
	EnvPrefix      = "SAS_CLI"
	EnvPasswordVar = "SAS_CLI_PASSWORD"

	// Update check
	LatestReleaseURL = "https://api.github.com/repos/jordanamos/sas-cli/releases/latest"

	// Doctor thresholds
	MinDiskSpaceGB  = 1
	MinFreeMemoryMB = 256

	// data command defaults
	DefaultHeadRows   = 10
	MaxPreviewRows    = 1000
	CSVTempFilePrefix = "_sascli_"
)
