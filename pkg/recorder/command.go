package recorder

// command is the sealed set of instructions carried on a session's command
// channel from the controller to the writer task.
type command interface {
	payload() []byte
}

// flushCommand hands a completed buffer to the writer task. Ownership of the
// backing array transfers with the command until the task has processed it.
type flushCommand struct {
	data []byte
}

func (c flushCommand) payload() []byte { return c.data }

// exitCommand carries the final (possibly empty) payload and instructs the
// task to close the storage resource and terminate.
type exitCommand struct {
	data []byte
}

func (c exitCommand) payload() []byte { return c.data }
