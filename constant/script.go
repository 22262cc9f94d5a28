package constant

// Script layout - the on-disk contract for extraction programs.
const (
	// ScriptExtension is appended to a program name to locate its source file.
	ScriptExtension = ".lua"

	// BootstrapScript is the name of the support program loaded before every extraction program.
	BootstrapScript = "dom"

	// DefaultScript is the program used when the caller does not name one.
	DefaultScript = "youtube"
)

// Host API - names visible inside the scripting context.
const (
	Namespace = "ymd"

	GetVersionFn = "getVersion"
	LogFn        = "log"
	RetrieveFn   = "retrieve"
	InputURL     = "inputURL"
)

// Result fields read back from the namespace after a program has run.
const (
	VideoURLField    = "videoURL"
	VideoNameField   = "videoName"
	VideoAuthorField = "videoAuthor"
	DownloadURLField = "downloadURL"
)
