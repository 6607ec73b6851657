package scope

import "os"

// appendToFile implements the File output target: create-if-absent,
// append-on-each-write.
func appendToFile(path, data string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteString(data)
	return err
}
