package redis

type RedisStreamConfig struct {
	RedisAddr     string
	RedisPassword string
	JobStream     string
	ResultStream  string
	Group         string
	ConsumerName  string
}

func NewRedisStreamConfig(redisAddr, redisPassword, jobStream, resultStream, group, consumerName string) *RedisStreamConfig {
	return &RedisStreamConfig{
		RedisAddr:     redisAddr,
		RedisPassword: redisPassword,
		JobStream:     jobStream,
		ResultStream:  resultStream,
		Group:         group,
		ConsumerName:  consumerName,
	}
}
