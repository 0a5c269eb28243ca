package config

import "strings"

// AppVersion is the version of the simulator, set at build time.
var AppVersion string

// AppName is the name of the application.
const AppName = "EyeSim"

// LogWinSubDir is the sub directory for the log files on windows.
var LogWinSubDir = AppName

// LogSubDir is the sub directory for the log files.
var LogSubDir = "." + strings.ToLower(AppName)

// LogExt is the extension for the log files.
var LogExt = ".log"

// ProfileFileName is the default name of the simulation profile.
const ProfileFileName = "profile.json"

// TuningFileName is the default name of the tuning coefficient file.
const TuningFileName = "tuning.json"
