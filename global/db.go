package global

import "gorm.io/gorm"

// DBEngine is the shared database handle, set once during startup
var DBEngine *gorm.DB
