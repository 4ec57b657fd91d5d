package utils

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const defaultAppName = "planetarium-booking"

// InitLogger tees to stdout and, when LogPath is set, to <LogPath>/<Name>.log
// rotated by lumberjack. The file always gets JSON; stdout switches to the
// console encoder in debug mode.
func InitLogger(app AppConfig) (*zap.Logger, error) {
	name := app.Name
	if name == "" {
		name = defaultAppName
	}

	level := zap.NewAtomicLevelAt(zap.InfoLevel)
	if app.Debug {
		level.SetLevel(zap.DebugLevel)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "timestamp"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeCaller = zapcore.ShortCallerEncoder

	stdoutEnc := zapcore.NewJSONEncoder(encCfg)
	if app.Debug {
		devCfg := encCfg
		devCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		stdoutEnc = zapcore.NewConsoleEncoder(devCfg)
	}

	cores := []zapcore.Core{zapcore.NewCore(stdoutEnc, zapcore.Lock(os.Stdout), level)}

	if app.LogPath != "" {
		if err := os.MkdirAll(app.LogPath, 0o755); err != nil {
			return nil, err
		}
		rotated := &lumberjack.Logger{
			Filename:   filepath.Join(app.LogPath, name+".log"),
			MaxSize:    10, // MB
			MaxBackups: 7,
			MaxAge:     28, // days
			Compress:   true,
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(rotated), level))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.Fields(zap.String("service", name))), nil
}
