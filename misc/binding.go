package misc

import (
	"github.com/fundwit/go-commons/types"
	"github.com/gin-gonic/gin"
)

func BindingPathID(c *gin.Context) (types.ID, error) {
	id, err := types.ParseID(c.Param("id"))
	if err != nil {
		return 0, err
	}
	return id, nil
}
