// Package profilers sets up profiling for the commands: an HTTP pprof server (-prof) and
// CPU (-cpu_profile) and heap (-mem_profile) profiles written to files.
//
// Linking it installs the flags.
package profilers

import (
	"context"
	"flag"
	"fmt"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
	"net/http"
	_ "net/http/pprof"
	"os"
	"runtime"
	"runtime/pprof"
)

var (
	flagProfiler   = flag.Int("prof", -1, "If set, runs the pprof HTTP server at the given port, and keeps the program alive at the end until interrupted.")
	flagCPUProfile = flag.String("cpu_profile", "", "Write CPU profile to `file`.")
	flagMemProfile = flag.String("mem_profile", "", "Write heap profile to `file` at exit.")

	// globalCtx is set on the call to Setup.
	globalCtx    = context.Background()
	profilerAddr string
	cpuFile      *os.File
)

// Setup starts the configured profilers. It should be followed by a deferred call to
// OnQuit. ctx is the program's context: if the HTTP profiler is enabled, OnQuit waits for
// it to be cancelled.
func Setup(ctx context.Context) error {
	globalCtx = ctx
	if *flagProfiler >= 0 {
		profilerAddr = fmt.Sprintf("localhost:%d", *flagProfiler)
		fmt.Printf("Profiler on http://%s/debug/pprof, e.g.: $ go tool pprof http://%s/debug/pprof/heap\n",
			profilerAddr, profilerAddr)
		go func() {
			klog.Fatal(http.ListenAndServe(profilerAddr, nil))
		}()
	}
	if *flagCPUProfile != "" {
		var err error
		cpuFile, err = os.Create(*flagCPUProfile)
		if err != nil {
			return errors.Wrapf(err, "failed to create CPU profile file %s", *flagCPUProfile)
		}
		if err = pprof.StartCPUProfile(cpuFile); err != nil {
			return errors.Wrap(err, "failed to start CPU profile")
		}
	}
	return nil
}

// OnQuit stops the CPU profile, writes the heap profile, and if the HTTP profiler is
// running, keeps the program alive until the context given to Setup is cancelled.
func OnQuit() {
	if cpuFile != nil {
		pprof.StopCPUProfile()
		if err := cpuFile.Close(); err != nil {
			klog.Errorf("Failed to close CPU profile %s: %+v", *flagCPUProfile, err)
		}
		cpuFile = nil
	}
	if *flagMemProfile != "" {
		writeHeapProfile(*flagMemProfile)
	}
	if profilerAddr == "" {
		return
	}
	// Don't freeze on panic.
	if err := recover(); err != nil {
		panic(err)
	}
	if globalCtx.Err() != nil {
		return
	}
	runtime.GC()
	fmt.Printf("Program finished: kept alive with profiler at http://%s/debug/pprof, interrupt (Ctrl+C) to exit.\n", profilerAddr)
	<-globalCtx.Done()
}

func writeHeapProfile(fileName string) {
	f, err := os.Create(fileName)
	if err != nil {
		klog.Errorf("Failed to create heap profile %s: %+v", fileName, err)
		return
	}
	defer func() { _ = f.Close() }()
	runtime.GC()
	if err = pprof.WriteHeapProfile(f); err != nil {
		klog.Errorf("Failed to write heap profile %s: %+v", fileName, err)
	}
}
