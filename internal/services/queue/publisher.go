package queue

// publish queues the indices of n jobs and closes the queue.
func publish(queue chan<- int, n int) {
	for i := 0; i < n; i++ {
		queue <- i
	}
	close(queue)
}
