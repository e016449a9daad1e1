// Command classify runs the classification pipeline against image files,
// useful for validating a model and device outside the host runtime.
//
//	classify -model resnet.onnx -device 0 -width 224 -height 224 img.jpg
//	classify -model resnet.onnx -dir frames/
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/cj-mills/openvino-image-classifier/images"
	"github.com/cj-mills/openvino-image-classifier/inference"
	"github.com/cj-mills/openvino-image-classifier/util"
)

func main() {
	modelPath := flag.String("model", "", "path to the model file")
	deviceIndex := flag.Int("device", 0, "compute device index")
	width := flag.Int("width", 224, "model input width")
	height := flag.Int("height", 224, "model input height")
	dir := flag.String("dir", "", "classify every image in this directory")
	cacheDir := flag.String("cache", inference.DefaultCacheDir, "compiled-model cache directory")
	listDevices := flag.Bool("devices", false, "list compute devices and exit")
	flag.Parse()

	opts := inference.DefaultEngineOptions()
	opts.CacheDir = *cacheDir
	classifier := inference.New(inference.NewORTEngine(opts))
	defer classifier.Close()

	count := classifier.RefreshDevices()
	if count == 0 {
		log.Fatal("no compute devices available")
	}
	for i := 0; i < count; i++ {
		name, _ := classifier.DeviceName(i)
		log.Printf("device %d: %s", i, name)
	}
	if *listDevices {
		return
	}

	if *modelPath == "" {
		log.Fatal("-model is required")
	}
	switch status := classifier.LoadModel(*modelPath, *deviceIndex, *width, *height); status {
	case inference.LoadOK:
	case inference.LoadErrReshape:
		info := classifier.Model()
		log.Printf("model kept its native %dx%d input; frames are resized to match",
			info.InputWidth, info.InputHeight)
	default:
		log.Fatalf("loading %s failed with status %d", *modelPath, status)
	}
	info := classifier.Model()

	paths := flag.Args()
	if *dir != "" {
		files, err := util.LoadDirectoryImageFiles(*dir)
		if err != nil {
			log.Fatalf("reading %s: %v", *dir, err)
		}
		for _, f := range files {
			paths = append(paths, f.Path)
		}
	}
	if len(paths) == 0 {
		log.Fatal("no input images")
	}

	failed := false
	for _, path := range paths {
		frame, err := images.ReadFrame(path, info.InputWidth, info.InputHeight)
		if err != nil {
			log.Printf("%s: %v", path, err)
			failed = true
			continue
		}
		class := classifier.Classify(frame.Data)
		if class == inference.InferenceError {
			log.Printf("%s: inference failed", path)
			failed = true
			continue
		}
		fmt.Printf("%s\t%d\n", path, class)
	}
	if failed {
		os.Exit(1)
	}
}
