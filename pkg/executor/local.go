// Copyright (c) 2017 Intel Corporation
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package executor

import (
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/intelsdi-x/netsweep/pkg/utils/err_collection"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// stopGracePeriod is how long Stop waits after SIGTERM before sending SIGKILL.
const stopGracePeriod = 5 * time.Second

// Local provisioning is responsible for providing the execution environment
// on local machine via exec.Command.
// It runs command as current user.
type Local struct {
	outputDir string
}

// NewLocal returns a Local instance which keeps task output in the working directory.
func NewLocal() Local {
	return Local{}
}

// NewLocalIn returns a Local instance which keeps task output under given directory.
func NewLocalIn(outputDir string) Local {
	return Local{outputDir: outputDir}
}

// Name returns user-friendly name of executor.
func (l Local) Name() string {
	return "Local"
}

// Execute runs the command given as input.
// Returned TaskHandle is able to stop & monitor the provisioned process.
func (l Local) Execute(command string) (TaskHandle, error) {
	log.Debug("Starting ", command, " locally")

	stdoutFile, stderrFile, err := createExecutorOutputFiles(l.outputDir, command, "local")
	if err != nil {
		return nil, err
	}

	cmd := exec.Command("sh", "-c", command)
	// It is important to set additional Process Group ID for parent process and his children
	// to have ability to kill all the children processes.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Stdout = stdoutFile
	cmd.Stderr = stderrFile

	if err := cmd.Start(); err != nil {
		stdoutFile.Close()
		stderrFile.Close()
		os.RemoveAll(filepath.Dir(stdoutFile.Name()))
		return nil, errors.Wrapf(err, "command %q start failed", command)
	}

	log.Debugf("Started %q with pid %d", command, cmd.Process.Pid)

	// Wait End channel is for checking the status of the Wait. If this channel is closed,
	// it means that the wait is completed (either with error or not)
	// This channel will not be used for passing any message.
	waitEndChannel := make(chan struct{})
	handle := newLocalTaskHandle(cmd, stdoutFile, stderrFile, waitEndChannel)

	go func() {
		defer close(waitEndChannel)

		// Wait() returns an error for non-zero exit codes too. We grab the process
		// state in any case, so the error object matters only when there is no state.
		err := cmd.Wait()
		exitCode := exitCodeFromState(cmd.ProcessState)
		if cmd.ProcessState == nil {
			log.Errorf("Waiting for %q failed: %v", command, err)
		}
		handle.setExitCode(exitCode)

		log.Debug(
			"Ended ", command,
			" with output in file: ", stdoutFile.Name(),
			" with err output in file: ", stderrFile.Name(),
			" with status code: ", exitCode)
	}()

	return handle, nil
}

func exitCodeFromState(state *os.ProcessState) int {
	if state == nil {
		return -1
	}

	status, ok := state.Sys().(syscall.WaitStatus)
	if !ok {
		return state.ExitCode()
	}

	// If Process exited on his own, show the exitStatus.
	if status.Exited() {
		return status.ExitStatus()
	}

	// Show what signal caused the termination.
	return -int(status.Signal())
}

// localTaskHandle implements TaskHandle interface.
type localTaskHandle struct {
	cmd            *exec.Cmd
	stdoutFile     *os.File
	stderrFile     *os.File
	waitEndChannel chan struct{}

	mutex    sync.Mutex
	exitCode *int
}

func newLocalTaskHandle(cmd *exec.Cmd, stdoutFile, stderrFile *os.File, waitEndChannel chan struct{}) *localTaskHandle {
	return &localTaskHandle{
		cmd:            cmd,
		stdoutFile:     stdoutFile,
		stderrFile:     stderrFile,
		waitEndChannel: waitEndChannel,
	}
}

func (taskHandle *localTaskHandle) setExitCode(exitCode int) {
	taskHandle.mutex.Lock()
	defer taskHandle.mutex.Unlock()
	taskHandle.exitCode = &exitCode
}

func (taskHandle *localTaskHandle) isTerminated() bool {
	select {
	case <-taskHandle.waitEndChannel:
		return true
	default:
		return false
	}
}

// Stop terminates the local task.
// SIGTERM is sent to the whole process group first and SIGKILL when the group
// does not end within grace period.
func (taskHandle *localTaskHandle) Stop() error {
	if taskHandle.isTerminated() {
		return nil
	}

	// The kill syscall interprets a negated PID N as the process group N belongs to.
	pgid := -taskHandle.cmd.Process.Pid
	log.Debug("Sending SIGTERM to process group ", pgid)
	if err := syscall.Kill(pgid, syscall.SIGTERM); err != nil && err != syscall.ESRCH {
		return errors.Wrapf(err, "cannot terminate process group %d", pgid)
	}

	if taskHandle.Wait(stopGracePeriod) {
		return nil
	}

	log.Debug("Sending SIGKILL to process group ", pgid)
	if err := syscall.Kill(pgid, syscall.SIGKILL); err != nil && err != syscall.ESRCH {
		return errors.Wrapf(err, "cannot kill process group %d", pgid)
	}
	taskHandle.Wait(0)

	return nil
}

// Status returns a state of the task.
func (taskHandle *localTaskHandle) Status() TaskState {
	if !taskHandle.isTerminated() {
		return RUNNING
	}

	return TERMINATED
}

// ExitCode returns a exitCode. If task is not terminated it returns error.
func (taskHandle *localTaskHandle) ExitCode() (int, error) {
	if !taskHandle.isTerminated() {
		return -1, errors.New("task is not terminated")
	}

	taskHandle.mutex.Lock()
	defer taskHandle.mutex.Unlock()
	return *taskHandle.exitCode, nil
}

// StdoutFile returns a file handle for file to the task's stdout file.
func (taskHandle *localTaskHandle) StdoutFile() (*os.File, error) {
	return openOutputFile(taskHandle.stdoutFile)
}

// StderrFile returns a file handle for file to the task's stderr file.
func (taskHandle *localTaskHandle) StderrFile() (*os.File, error) {
	return openOutputFile(taskHandle.stderrFile)
}

func openOutputFile(file *os.File) (*os.File, error) {
	if file == nil {
		return nil, errors.New("output file was not created")
	}

	readFile, err := os.Open(file.Name())
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open %q", file.Name())
	}
	return readFile, nil
}

// Wait blocks until process is terminated or timeout appeared.
// Returns true when process terminates before timeout, otherwise false.
func (taskHandle *localTaskHandle) Wait(timeout time.Duration) bool {
	if timeout == 0 {
		<-taskHandle.waitEndChannel
		return true
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-taskHandle.waitEndChannel:
		return true
	case <-timer.C:
		return false
	}
}

// Clean closes the files to which stdout and stderr of executed command was written.
func (taskHandle *localTaskHandle) Clean() error {
	var errCollection errcollection.ErrorCollection

	if err := taskHandle.stdoutFile.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
		errCollection.Add(errors.Wrapf(err, "cannot close stdout file %q", taskHandle.stdoutFile.Name()))
	}
	if err := taskHandle.stderrFile.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
		errCollection.Add(errors.Wrapf(err, "cannot close stderr file %q", taskHandle.stderrFile.Name()))
	}

	return errCollection.GetErrIfAny()
}

// EraseOutput removes task's stdout & stderr files together with their directory.
func (taskHandle *localTaskHandle) EraseOutput() error {
	outputDir := filepath.Dir(taskHandle.stdoutFile.Name())
	if err := os.RemoveAll(outputDir); err != nil {
		return errors.Wrapf(err, "cannot remove output directory %q", outputDir)
	}
	return nil
}

// Address returns address where task was located.
func (taskHandle *localTaskHandle) Address() string {
	return "127.0.0.1"
}
