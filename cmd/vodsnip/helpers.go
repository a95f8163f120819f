package main

import "os"

func removeFiles(paths ...string) {
	for _, path := range paths {
		_ = os.Remove(path)
	}
}
