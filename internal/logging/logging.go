package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	log "github.com/sirupsen/logrus"
)

// Init настраивает глобальный logrus: уровень, формат и, если задан файл,
// дублирование вывода в ежедневно ротируемый лог.
// Возвращает функцию закрытия файла.
func Init(level, file string) (func(), error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("неизвестный уровень логирования %q: %w", level, err)
	}
	log.SetLevel(lvl)
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	if file == "" {
		log.SetOutput(os.Stdout)
		return func() {}, nil
	}

	writer, err := newRotateWriter(file)
	if err != nil {
		return nil, err
	}
	log.SetOutput(io.MultiWriter(os.Stdout, writer))
	log.Infof("Логи пишутся в %s", file)

	return func() {
		if err := writer.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Ошибка закрытия файла логов: %v\n", err)
		}
	}, nil
}

// newRotateWriter: файл на каждые сутки, хранение 7 дней, file - ссылка на текущий.
func newRotateWriter(file string) (*rotatelogs.RotateLogs, error) {
	writer, err := rotatelogs.New(
		file+".%Y%m%d",
		rotatelogs.WithLinkName(file),
		rotatelogs.WithMaxAge(7*24*time.Hour),
		rotatelogs.WithRotationTime(24*time.Hour),
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания ротируемого лога: %w", err)
	}
	return writer, nil
}
