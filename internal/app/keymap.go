package app

// Key binding constants used in handleKey.
const (
	KeyQuit         = "q"
	KeyCtrlC        = "ctrl+c"
	KeySpace        = " "
	KeyPause        = "p"
	KeyUpload       = "u"
	KeyExport       = "e"
	KeyHistory      = "h"
	KeySettings     = "s"
	KeyEsc          = "esc"
	KeyEnter        = "enter"
	KeyBackspace    = "backspace"
	KeyConfirm      = "y"
	KeyCancel       = "n"
	KeyDown         = "j"
	KeyUp           = "k"
	KeyDelete       = "d"
	KeyClearAll     = "C"
	KeyDismissError = "o"
	KeyErrorDetail  = "x"
	KeyInput        = "i"
	KeyClearCred    = "c"
	KeyAutoDownload = "a"
	KeyCycleFormat  = "f"
)
