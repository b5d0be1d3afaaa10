package epidemicsim

import (
	"log"
	"os"
)

var (
	Log *log.Logger
)

// InitLogger points the audit logger (auto-policy add/remove lines) at the
// given file. Leaving the logger uninitialized keeps the audit trail on
// stdout only.
func InitLogger(logpath string) error {
	file, err := os.Create(logpath)
	if err != nil {
		return err
	}

	Log = log.New(file, "", log.LstdFlags|log.Lshortfile)
	Log.SetFlags(log.Flags() &^ (log.Ldate | log.Ltime))

	Log.Println("LogFile : " + logpath)
	return nil
}
