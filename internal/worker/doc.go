// Package worker выполняет задачи из рабочей очереди task_queue.
//
// Worker получает задачу, имитирует работу (секунда на каждую точку
// в теле) и сообщает о результате через возвращаемую ошибку:
// nil — задача подтверждается (ack), ошибка — возвращается в очередь.
//
//	w := worker.New(worker.Config{Logger: logger})
//	err := client.ConsumeTasks(ctx, mq.TaskSubscription{
//	    Prefetch: w.Prefetch(),
//	    Handler:  w.Handle,
//	})
//
// Prefetch = 1 даёт fair dispatch: брокер не отдаёт воркеру новую
// задачу, пока тот не подтвердил предыдущую.
package worker
