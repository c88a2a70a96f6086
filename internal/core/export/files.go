package export

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Zip empacota os arquivos em um .zip, na ordem recebida.
func Zip(files []File) ([]byte, error) {
	var buffer bytes.Buffer
	zw := zip.NewWriter(&buffer)

	for _, file := range files {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     file.Name,
			Method:   zip.Deflate,
			Modified: time.Now(),
		})
		if err != nil {
			return nil, fmt.Errorf("erro ao adicionar %s ao zip: %w", file.Name, err)
		}
		if _, err := w.Write(file.Content); err != nil {
			return nil, fmt.Errorf("erro ao adicionar %s ao zip: %w", file.Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// UniquePath devolve dir/name ou, se já existir, dir/name(1).ext, dir/name(2).ext...
func UniquePath(dir, name string) string {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)

	candidate := filepath.Join(dir, name)
	for counter := 1; exists(candidate); counter++ {
		candidate = filepath.Join(dir, fmt.Sprintf("%s(%d)%s", base, counter, ext))
	}
	return candidate
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// WriteToDir grava os arquivos em dir, sobrescrevendo execuções anteriores.
// Quando um arquivo existente não pode ser sobrescrito (aberto em outro
// programa, sem permissão) grava com um nome único. Devolve os caminhos gravados.
func WriteToDir(dir string, files []File) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("não foi possível criar a pasta %s: %w", dir, err)
	}

	paths := make([]string, 0, len(files))
	for _, file := range files {
		path := filepath.Join(dir, file.Name)
		err := os.WriteFile(path, file.Content, 0o644)
		if err != nil && exists(path) {
			path = UniquePath(dir, file.Name)
			err = os.WriteFile(path, file.Content, 0o644)
		}
		if err != nil {
			return paths, fmt.Errorf("não foi possível gravar %s: %w", file.Name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
